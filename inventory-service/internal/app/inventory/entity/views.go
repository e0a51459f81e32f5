package entity

import "time"

// OrderView заказ с разрешенными ссылками на товары и поставщика
// Собирается при чтении, в хранилище не денормализуется
type OrderView struct {
	ID          string          `json:"id"`
	Items       []OrderItemView `json:"items"`
	Supplier    *SupplierRef    `json:"supplierId"`
	Status      OrderStatus     `json:"status"`
	TotalAmount float64         `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// OrderItemView позиция заказа; Product равен nil, если товар уже удален
type OrderItemView struct {
	Product  *ProductRef `json:"productId"`
	Quantity int         `json:"quantity"`
	Price    float64     `json:"price"`
}

// ProductRef краткая информация о товаре для отображения в заказе
type ProductRef struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	SKU   string   `json:"sku"`
	Price *float64 `json:"price,omitempty"`
}

// SupplierRef краткая информация о поставщике для отображения в заказе
type SupplierRef struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Contact Contact `json:"contact"`
}
