package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/infrastructure"
	"inventorystore/inventory-service/internal/app/inventory/repository"
)

const (
	msgProductFieldsRequired = "Please provide SKU, name, price, and stock"
	msgSKUExists             = "SKU already exists"
)

var createProductMessages = fieldMessages{
	"sku":       msgProductFieldsRequired,
	"name":      msgProductFieldsRequired,
	"price":     msgProductFieldsRequired,
	"stock":     msgProductFieldsRequired,
	"price.gte": "Price and stock cannot be negative",
	"stock.gte": "Price and stock cannot be negative",
}

var updateProductMessages = fieldMessages{
	"price": "Price cannot be negative",
	"stock": "Stock cannot be negative",
}

// ProductService бизнес-логика товаров
type ProductService struct {
	productRepo repository.ProductRepository
	events      eventEmitter
}

func NewProductService(productRepo repository.ProductRepository, publisher infrastructure.MessagePublisher) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		events:      newEventEmitter(publisher),
	}
}

// ListProducts возвращает страницу товаров от новых к старым
func (s *ProductService) ListProducts(ctx context.Context, params entity.ListParams) (*entity.Page[entity.Product], error) {
	params = params.Normalize()

	products, err := s.productRepo.List(ctx, params.Offset(), int64(params.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	total, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	return &entity.Page[entity.Product]{
		Items: products,
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	}, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, "Product", "get product")
	}
	return product, nil
}

// GetProducts возвращает найденные товары по ID, реализует ProductCatalog
func (s *ProductService) GetProducts(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	products, err := s.productRepo.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return nil, newError(ErrInvalidID, "Invalid product ID")
		}
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	result := make(map[string]*entity.Product, len(products))
	for i := range products {
		result[products[i].ID] = &products[i]
	}
	return result, nil
}

// CreateProduct создает товар; цена 0 допустима, отрицательные цена и остаток нет
func (s *ProductService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	normalized := *req
	normalized.SKU = strings.TrimSpace(req.SKU)
	normalized.Name = strings.TrimSpace(req.Name)

	if err := validateStruct(&normalized, createProductMessages); err != nil {
		return nil, err
	}

	product := &entity.Product{
		SKU:   normalized.SKU,
		Name:  normalized.Name,
		Price: *normalized.Price,
		Stock: *normalized.Stock,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, newError(ErrConflict, msgSKUExists)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.events.emit(ctx, entityProduct, opCreated, product.ID, product)

	return product, nil
}

// UpdateProduct применяет переданные поля к товару
// Ошибки валидации проверяются до обращения к хранилищу
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *entity.UpdateProductRequest) (*entity.Product, error) {
	normalized := *req
	normalized.SKU = trimPtr(req.SKU)
	normalized.Name = trimPtr(req.Name)

	if err := validateStruct(&normalized, updateProductMessages); err != nil {
		return nil, err
	}
	if normalized.SKU != nil && *normalized.SKU == "" {
		return nil, validationError("SKU cannot be empty")
	}
	if normalized.Name != nil && *normalized.Name == "" {
		return nil, validationError("Product name cannot be empty")
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, "Product", "get product")
	}

	if normalized.SKU != nil {
		product.SKU = *normalized.SKU
	}
	if normalized.Name != nil {
		product.Name = *normalized.Name
	}
	if normalized.Price != nil {
		product.Price = *normalized.Price
	}
	if normalized.Stock != nil {
		product.Stock = *normalized.Stock
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, newError(ErrConflict, msgSKUExists)
		}
		return nil, translateLookupError(err, "Product", "update product")
	}

	s.events.emit(ctx, entityProduct, opUpdated, product.ID, product)

	return product, nil
}

// DeleteProduct удаляет товар; заказы с этим товаром не меняются
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return translateLookupError(err, "Product", "delete product")
	}

	s.events.emit(ctx, entityProduct, opDeleted, id, nil)
	return nil
}

// uniqueIDs убирает повторы, сохраняя порядок
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
