package entity

import (
	"time"
)

// Product представляет товар на складе
type Product struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"` // Уникальный артикул
	Name      string    `json:"name"`
	Price     float64   `json:"price"` // Текущая цена, не может быть отрицательной
	Stock     int       `json:"stock"` // Остаток на складе, не может быть отрицательным
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Supplier представляет поставщика
type Supplier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   Contact   `json:"contact"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Contact контактные данные поставщика, email обязателен
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// OrderStatus представляет статусы заказа
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Ожидает обработки
	OrderStatusCompleted OrderStatus = "completed" // Выполнен
	OrderStatusCancelled OrderStatus = "cancelled" // Отменен
)

// IsValid проверяет, что статус входит в допустимый набор
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order представляет заказ у поставщика
// ProductID и SupplierID - ссылки без владения, удаление товара или поставщика заказ не затрагивает
type Order struct {
	ID          string      `json:"id"`
	Items       []OrderItem `json:"items"`
	SupplierID  string      `json:"supplierId"`
	Status      OrderStatus `json:"status"`
	TotalAmount float64     `json:"totalAmount"` // Вычисляется сервером: сумма quantity * price
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// OrderItem позиция заказа
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // Цена за единицу, зафиксированная при создании заказа
}

// RecalculateTotal пересчитывает TotalAmount по позициям заказа
// Вызывается перед каждым сохранением, меняющим список позиций
func (o *Order) RecalculateTotal() {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.Price
	}
	o.TotalAmount = total
}

// User минимальная запись пользователя
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       *int      `json:"age,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InventoryEvent событие изменения данных склада для Kafka
type InventoryEvent struct {
	EventType string      `json:"eventType"` // PRODUCT_CREATED, ORDER_UPDATED, ...
	Entity    string      `json:"entity"`
	EntityID  string      `json:"entityId"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
