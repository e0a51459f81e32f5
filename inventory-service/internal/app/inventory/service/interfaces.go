package service

import (
	"context"

	"inventorystore/inventory-service/internal/app/inventory/entity"
)

type ProductServiceInterface interface {
	ListProducts(ctx context.Context, params entity.ListParams) (*entity.Page[entity.Product], error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id string, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type SupplierServiceInterface interface {
	ListSuppliers(ctx context.Context, params entity.ListParams) (*entity.Page[entity.Supplier], error)
	GetSupplier(ctx context.Context, id string) (*entity.Supplier, error)
	CreateSupplier(ctx context.Context, req *entity.CreateSupplierRequest) (*entity.Supplier, error)
	UpdateSupplier(ctx context.Context, id string, req *entity.UpdateSupplierRequest) (*entity.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
}

type OrderServiceInterface interface {
	ListOrders(ctx context.Context, params entity.ListParams) (*entity.Page[entity.OrderView], error)
	GetOrder(ctx context.Context, id string) (*entity.OrderView, error)
	CreateOrder(ctx context.Context, req *entity.CreateOrderRequest) (*entity.OrderView, error)
	UpdateOrder(ctx context.Context, id string, req *entity.UpdateOrderRequest) (*entity.OrderView, error)
	UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.OrderView, error)
	DeleteOrder(ctx context.Context, id string) error
}

type UserServiceInterface interface {
	CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error)
	ListUsers(ctx context.Context) ([]entity.User, error)
}

// ProductCatalog поиск товаров по ID для заказов
// Отсутствующие товары не попадают в результат
type ProductCatalog interface {
	GetProducts(ctx context.Context, ids []string) (map[string]*entity.Product, error)
}

// SupplierDirectory поиск поставщиков по ID для заказов
type SupplierDirectory interface {
	GetSuppliers(ctx context.Context, ids []string) (map[string]*entity.Supplier, error)
}
