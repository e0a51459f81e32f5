package postgres

import (
	"time"

	"github.com/google/uuid"

	"inventorystore/inventory-service/internal/app/inventory/entity"
)

type productModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU       string    `gorm:"column:sku;type:varchar(100);not null;uniqueIndex:products_sku_key"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Price     float64   `gorm:"type:double precision;not null;check:price >= 0"`
	Stock     int       `gorm:"not null;check:stock >= 0"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (productModel) TableName() string {
	return "products"
}

func (m productModel) toEntity() entity.Product {
	return entity.Product{
		ID:        m.ID.String(),
		SKU:       m.SKU,
		Name:      m.Name,
		Price:     m.Price,
		Stock:     m.Stock,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type supplierModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	ContactEmail string    `gorm:"column:contact_email;type:varchar(255);not null"`
	ContactPhone string    `gorm:"column:contact_phone;type:varchar(50)"`
	CreatedAt    time.Time `gorm:"not null;index"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (supplierModel) TableName() string {
	return "suppliers"
}

func (m supplierModel) toEntity() entity.Supplier {
	return entity.Supplier{
		ID:   m.ID.String(),
		Name: m.Name,
		Contact: entity.Contact{
			Email: m.ContactEmail,
			Phone: m.ContactPhone,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// orderModel заказ; product_id и supplier_id без внешних ключей,
// так как удаление товара или поставщика не должно затрагивать заказы
type orderModel struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	SupplierID  uuid.UUID        `gorm:"type:uuid;not null"`
	Status      string           `gorm:"type:varchar(20);not null"`
	TotalAmount float64          `gorm:"type:double precision;not null"`
	CreatedAt   time.Time        `gorm:"not null;index"`
	UpdatedAt   time.Time        `gorm:"not null"`
	Items       []orderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (orderModel) TableName() string {
	return "orders"
}

type orderItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Position  int       `gorm:"not null"` // Порядок позиции в заказе
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null;check:quantity >= 1"`
	Price     float64   `gorm:"type:double precision;not null;check:price >= 0"`
}

func (orderItemModel) TableName() string {
	return "order_items"
}

func (m orderModel) toEntity(items []orderItemModel) entity.Order {
	orderItems := make([]entity.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, entity.OrderItem{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return entity.Order{
		ID:          m.ID.String(),
		Items:       orderItems,
		SupplierID:  m.SupplierID.String(),
		Status:      entity.OrderStatus(m.Status),
		TotalAmount: m.TotalAmount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type userModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Age       *int
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (userModel) TableName() string {
	return "users"
}

func (m userModel) toEntity() entity.User {
	return entity.User{
		ID:        m.ID.String(),
		Name:      m.Name,
		Email:     m.Email,
		Age:       m.Age,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
