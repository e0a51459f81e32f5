package entity

// CreateProductRequest - запрос на создание товара
// Указатели позволяют отличить отсутствующее поле от нулевого значения
type CreateProductRequest struct {
	SKU   string   `json:"sku" validate:"required"`
	Name  string   `json:"name" validate:"required"`
	Price *float64 `json:"price" validate:"required,gte=0"`
	Stock *int     `json:"stock" validate:"required,gte=0"`
}

// UpdateProductRequest - частичное обновление товара
type UpdateProductRequest struct {
	SKU   *string  `json:"sku"`
	Name  *string  `json:"name"`
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock *int     `json:"stock" validate:"omitempty,gte=0"`
}

// ContactRequest - контактные данные поставщика в запросе
type ContactRequest struct {
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone"`
}

// CreateSupplierRequest - запрос на создание поставщика
type CreateSupplierRequest struct {
	Name    string          `json:"name" validate:"required"`
	Contact *ContactRequest `json:"contact" validate:"required"`
}

// UpdateSupplierRequest - частичное обновление поставщика
type UpdateSupplierRequest struct {
	Name    *string               `json:"name"`
	Contact *UpdateContactRequest `json:"contact"`
}

type UpdateContactRequest struct {
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// OrderItemRequest - позиция заказа в запросе, цена необязательна
type OrderItemRequest struct {
	ProductID string   `json:"productId" validate:"required"`
	Quantity  int      `json:"quantity" validate:"required,gte=1"`
	Price     *float64 `json:"price" validate:"omitempty,gte=0"`
}

// CreateOrderRequest - запрос на создание заказа
type CreateOrderRequest struct {
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	SupplierID string             `json:"supplierId" validate:"required"`
	Status     OrderStatus        `json:"status" validate:"omitempty,oneof=pending completed cancelled"`
}

// UpdateOrderRequest - обновление заказа: статус и/или полная замена позиций
type UpdateOrderRequest struct {
	Status *OrderStatus       `json:"status" validate:"omitempty,oneof=pending completed cancelled"`
	Items  []OrderItemRequest `json:"items" validate:"omitempty,min=1,dive"`
}

// CreateUserRequest - запрос на создание пользователя
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Age   *int   `json:"age" validate:"omitempty,gte=0"`
}

// ListParams параметры постраничной выборки
type ListParams struct {
	Page  int
	Limit int
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage ограничивает смещение: (MaxPage-1)*MaxLimit помещается в int64 и в skip MongoDB
	MaxPage = 1_000_000_000
)

// Normalize подставляет значения по умолчанию для некорректных page и limit,
// слишком большие значения ограничиваются MaxPage и MaxLimit
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset количество записей, которые нужно пропустить; для ненормализованных параметров 0
func (p ListParams) Offset() int64 {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	return int64(p.Page-1) * int64(p.Limit)
}

// Page страница результатов с данными для пагинации
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

// Pages количество страниц: ceil(total/limit)
func (p Page[T]) Pages() int64 {
	if p.Limit <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return (p.Total + limit - 1) / limit
}

// Response - единый JSON конверт ответа
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Total   *int64      `json:"total,omitempty"`
	Page    *int        `json:"page,omitempty"`
	Pages   *int64      `json:"pages,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
