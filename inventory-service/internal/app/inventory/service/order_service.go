package service

import (
	"context"
	"fmt"
	"strings"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/infrastructure"
	"inventorystore/inventory-service/internal/app/inventory/repository"
	"inventorystore/pkg/metrics"
)

const (
	msgOrderItemsRequired = "Order must have at least one item"
	msgInvalidStatus      = "Invalid status. Must be: pending, completed, or cancelled"
)

var orderMessages = fieldMessages{
	"items":      msgOrderItemsRequired,
	"supplierId": "Supplier ID is required",
	"productId":  "Product ID is required for every item",
	"quantity":   "Quantity must be at least 1",
	"price":      "Item price cannot be negative",
	"status":     msgInvalidStatus,
}

// OrderService бизнес-логика заказов
// Товары и поставщики читаются через ProductCatalog и SupplierDirectory
type OrderService struct {
	orderRepo repository.OrderRepository
	products  ProductCatalog
	suppliers SupplierDirectory
	events    eventEmitter
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	products ProductCatalog,
	suppliers SupplierDirectory,
	publisher infrastructure.MessagePublisher,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		products:  products,
		suppliers: suppliers,
		events:    newEventEmitter(publisher),
	}
}

// ListOrders возвращает страницу заказов со ссылками на товары и поставщиков
func (s *OrderService) ListOrders(ctx context.Context, params entity.ListParams) (*entity.Page[entity.OrderView], error) {
	params = params.Normalize()

	orders, err := s.orderRepo.List(ctx, params.Offset(), int64(params.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	total, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	views, err := s.resolveViews(ctx, orders, false)
	if err != nil {
		return nil, err
	}

	return &entity.Page[entity.OrderView]{
		Items: views,
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	}, nil
}

// GetOrder возвращает заказ; в ссылке на товар есть цена, у поставщика все контакты
func (s *OrderService) GetOrder(ctx context.Context, id string) (*entity.OrderView, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, "Order", "get order")
	}

	views, err := s.resolveViews(ctx, []entity.Order{*order}, true)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// CreateOrder создает заказ
// 1. Проверяет позиции, поставщика и статус
// 2. Находит все товары; цена позиции по умолчанию - текущая цена товара
// 3. Проверяет существование поставщика
// 4. Считает totalAmount и сохраняет заказ
func (s *OrderService) CreateOrder(ctx context.Context, req *entity.CreateOrderRequest) (*entity.OrderView, error) {
	normalized := *req
	normalized.SupplierID = strings.TrimSpace(req.SupplierID)
	normalized.Items = normalizeItems(req.Items)

	if err := validateStruct(&normalized, orderMessages); err != nil {
		return nil, err
	}

	items, products, err := s.resolveItems(ctx, normalized.Items)
	if err != nil {
		return nil, err
	}

	suppliers, err := s.suppliers.GetSuppliers(ctx, []string{normalized.SupplierID})
	if err != nil {
		return nil, err
	}
	if _, ok := suppliers[normalized.SupplierID]; !ok {
		return nil, newError(ErrNotFound, "Supplier not found: %s", normalized.SupplierID)
	}

	status := normalized.Status
	if status == "" {
		status = entity.OrderStatusPending
	}

	order := &entity.Order{
		Items:      items,
		SupplierID: normalized.SupplierID,
		Status:     status,
	}
	order.RecalculateTotal()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	metrics.RecordOrderCreated(order.TotalAmount)
	s.events.emit(ctx, entityOrder, opCreated, order.ID, order)

	view := buildOrderView(*order, products, suppliers, false)
	return &view, nil
}

// UpdateOrder меняет статус и/или заменяет позиции заказа
// При замене позиций цены разрешаются как при создании и totalAmount пересчитывается
func (s *OrderService) UpdateOrder(ctx context.Context, id string, req *entity.UpdateOrderRequest) (*entity.OrderView, error) {
	if req.Status == nil && req.Items == nil {
		return nil, validationError("Please provide status or items to update")
	}
	if req.Items != nil && len(req.Items) == 0 {
		return nil, validationError(msgOrderItemsRequired)
	}

	normalized := *req
	normalized.Items = normalizeItems(req.Items)

	if err := validateStruct(&normalized, orderMessages); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, "Order", "get order")
	}

	if normalized.Items != nil {
		items, _, err := s.resolveItems(ctx, normalized.Items)
		if err != nil {
			return nil, err
		}
		order.Items = items
		order.RecalculateTotal()
	}

	statusChanged := false
	if normalized.Status != nil && *normalized.Status != order.Status {
		order.Status = *normalized.Status
		statusChanged = true
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, translateLookupError(err, "Order", "update order")
	}

	if statusChanged {
		metrics.RecordOrderStatus(string(order.Status))
	}
	s.events.emit(ctx, entityOrder, opUpdated, order.ID, order)

	views, err := s.resolveViews(ctx, []entity.Order{*order}, false)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// UpdateOrderStatus меняет только статус; допустим переход из любого статуса в любой
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.OrderView, error) {
	if !status.IsValid() {
		return nil, validationError(msgInvalidStatus)
	}
	return s.UpdateOrder(ctx, id, &entity.UpdateOrderRequest{Status: &status})
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return translateLookupError(err, "Order", "delete order")
	}

	s.events.emit(ctx, entityOrder, opDeleted, id, nil)
	return nil
}

// resolveItems находит товары позиций и фиксирует цены
// Если хотя бы одного товара нет, возвращает ErrNotFound и ничего не сохраняется
func (s *OrderService) resolveItems(ctx context.Context, reqItems []entity.OrderItemRequest) ([]entity.OrderItem, map[string]*entity.Product, error) {
	productIDs := make([]string, 0, len(reqItems))
	for _, item := range reqItems {
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.products.GetProducts(ctx, productIDs)
	if err != nil {
		return nil, nil, err
	}

	items := make([]entity.OrderItem, 0, len(reqItems))
	for _, reqItem := range reqItems {
		product, ok := products[reqItem.ProductID]
		if !ok {
			return nil, nil, newError(ErrNotFound, "Product not found: %s", reqItem.ProductID)
		}

		price := product.Price
		if reqItem.Price != nil {
			price = *reqItem.Price
		}

		items = append(items, entity.OrderItem{
			ProductID: reqItem.ProductID,
			Quantity:  reqItem.Quantity,
			Price:     price,
		})
	}

	return items, products, nil
}

// resolveViews подгружает товары и поставщиков для набора заказов двумя запросами
func (s *OrderService) resolveViews(ctx context.Context, orders []entity.Order, detailed bool) ([]entity.OrderView, error) {
	var productIDs, supplierIDs []string
	for _, order := range orders {
		supplierIDs = append(supplierIDs, order.SupplierID)
		for _, item := range order.Items {
			productIDs = append(productIDs, item.ProductID)
		}
	}

	products := map[string]*entity.Product{}
	if len(productIDs) > 0 {
		found, err := s.products.GetProducts(ctx, productIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve order products: %w", err)
		}
		products = found
	}

	suppliers := map[string]*entity.Supplier{}
	if len(supplierIDs) > 0 {
		found, err := s.suppliers.GetSuppliers(ctx, supplierIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve order suppliers: %w", err)
		}
		suppliers = found
	}

	views := make([]entity.OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, buildOrderView(order, products, suppliers, detailed))
	}
	return views, nil
}

// buildOrderView собирает представление заказа; удаленные товары и поставщик дают nil
func buildOrderView(order entity.Order, products map[string]*entity.Product, suppliers map[string]*entity.Supplier, detailed bool) entity.OrderView {
	items := make([]entity.OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		var ref *entity.ProductRef
		if product, ok := products[item.ProductID]; ok {
			ref = &entity.ProductRef{
				ID:   product.ID,
				Name: product.Name,
				SKU:  product.SKU,
			}
			if detailed {
				price := product.Price
				ref.Price = &price
			}
		}
		items = append(items, entity.OrderItemView{
			Product:  ref,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	var supplierRef *entity.SupplierRef
	if supplier, ok := suppliers[order.SupplierID]; ok {
		supplierRef = &entity.SupplierRef{
			ID:      supplier.ID,
			Name:    supplier.Name,
			Contact: entity.Contact{Email: supplier.Contact.Email},
		}
		if detailed {
			supplierRef.Contact = supplier.Contact
		}
	}

	return entity.OrderView{
		ID:          order.ID,
		Items:       items,
		Supplier:    supplierRef,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

func normalizeItems(items []entity.OrderItemRequest) []entity.OrderItemRequest {
	if items == nil {
		return nil
	}
	normalized := make([]entity.OrderItemRequest, len(items))
	for i, item := range items {
		item.ProductID = strings.TrimSpace(item.ProductID)
		normalized[i] = item
	}
	return normalized
}
