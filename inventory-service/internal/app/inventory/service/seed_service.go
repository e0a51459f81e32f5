package service

import (
	"context"
	"fmt"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/repository"
	"inventorystore/pkg/logger"
)

// SeedResult количество созданных записей
type SeedResult struct {
	Suppliers int
	Products  int
	Orders    int
	Users     int
}

// SeedService очищает хранилище и заполняет его демонстрационными данными
// Записи создаются через сервисы, поэтому проходят ту же валидацию, что и API
type SeedService struct {
	repos     *repository.Repositories
	products  *ProductService
	suppliers *SupplierService
	orders    *OrderService
	users     *UserService
}

func NewSeedService(
	repos *repository.Repositories,
	products *ProductService,
	suppliers *SupplierService,
	orders *OrderService,
	users *UserService,
) *SeedService {
	return &SeedService{
		repos:     repos,
		products:  products,
		suppliers: suppliers,
		orders:    orders,
		users:     users,
	}
}

func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	if err := s.clear(ctx); err != nil {
		return nil, err
	}

	result := &SeedResult{}

	supplierIDs := make([]string, 0, len(seedSuppliers))
	for i := range seedSuppliers {
		supplier, err := s.suppliers.CreateSupplier(ctx, &seedSuppliers[i])
		if err != nil {
			return nil, fmt.Errorf("failed to seed supplier %q: %w", seedSuppliers[i].Name, err)
		}
		supplierIDs = append(supplierIDs, supplier.ID)
		result.Suppliers++
	}

	productIDs := make([]string, 0, len(seedProducts))
	for i := range seedProducts {
		product, err := s.products.CreateProduct(ctx, &seedProducts[i])
		if err != nil {
			return nil, fmt.Errorf("failed to seed product %q: %w", seedProducts[i].SKU, err)
		}
		productIDs = append(productIDs, product.ID)
		result.Products++
	}

	orders := []entity.CreateOrderRequest{
		{
			SupplierID: supplierIDs[0],
			Items: []entity.OrderItemRequest{
				{ProductID: productIDs[0], Quantity: 10},
				{ProductID: productIDs[1], Quantity: 5},
			},
		},
		{
			SupplierID: supplierIDs[1],
			Status:     entity.OrderStatusCompleted,
			Items: []entity.OrderItemRequest{
				{ProductID: productIDs[2], Quantity: 3, Price: float64Ptr(42.5)},
			},
		},
	}
	for i := range orders {
		if _, err := s.orders.CreateOrder(ctx, &orders[i]); err != nil {
			return nil, fmt.Errorf("failed to seed order: %w", err)
		}
		result.Orders++
	}

	for i := range seedUsers {
		if _, err := s.users.CreateUser(ctx, &seedUsers[i]); err != nil {
			return nil, fmt.Errorf("failed to seed user %q: %w", seedUsers[i].Email, err)
		}
		result.Users++
	}

	logger.Info().
		Int("suppliers", result.Suppliers).
		Int("products", result.Products).
		Int("orders", result.Orders).
		Int("users", result.Users).
		Msg("Database seeded successfully")

	return result, nil
}

// clear удаляет все записи; заказы первыми, так как ссылаются на остальные
func (s *SeedService) clear(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) (int64, error)
	}{
		{"orders", s.repos.Orders.DeleteAll},
		{"products", s.repos.Products.DeleteAll},
		{"suppliers", s.repos.Suppliers.DeleteAll},
		{"users", s.repos.Users.DeleteAll},
	}

	for _, step := range steps {
		deleted, err := step.fn(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", step.name, err)
		}
		logger.Debug().Str("collection", step.name).Int64("deleted", deleted).Msg("Cleared existing data")
	}
	return nil
}

func float64Ptr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

var seedSuppliers = []entity.CreateSupplierRequest{
	{Name: "Northwind Traders", Contact: &entity.ContactRequest{Email: "orders@northwind.example", Phone: "+1-555-0100"}},
	{Name: "Contoso Supply", Contact: &entity.ContactRequest{Email: "sales@contoso.example"}},
}

var seedProducts = []entity.CreateProductRequest{
	{SKU: "WID-001", Name: "Steel Widget", Price: float64Ptr(2.5), Stock: intPtr(500)},
	{SKU: "GAD-014", Name: "Compact Gadget", Price: float64Ptr(19.99), Stock: intPtr(120)},
	{SKU: "BOL-100", Name: "Hex Bolt Pack", Price: float64Ptr(45), Stock: intPtr(60)},
	{SKU: "SMP-000", Name: "Free Sample", Price: float64Ptr(0), Stock: intPtr(1000)},
}

var seedUsers = []entity.CreateUserRequest{
	{Name: "Inventory Admin", Email: "admin@inventory.example", Age: intPtr(35)},
}
