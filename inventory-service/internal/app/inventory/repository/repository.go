package repository

import (
	"context"
	"errors"

	"inventorystore/inventory-service/internal/app/inventory/entity"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidID    = errors.New("invalid id")
)

// MetricsService имя сервиса в метриках db_query_duration_seconds
const MetricsService = "inventory-service"

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Product, error)
	List(ctx context.Context, offset, limit int64) ([]entity.Product, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Supplier, error)
	List(ctx context.Context, offset, limit int64) ([]entity.Supplier, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, offset, limit int64) ([]entity.Order, error)
	Count(ctx context.Context) (int64, error)
	// Update сохраняет статус, позиции и итоговую сумму заказа
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	List(ctx context.Context) ([]entity.User, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Repositories набор репозиториев одного хранилища
// Close освобождает соединение с хранилищем
type Repositories struct {
	Products  ProductRepository
	Suppliers SupplierRepository
	Orders    OrderRepository
	Users     UserRepository
	Close     func(ctx context.Context) error
}
