package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/repository"
	"inventorystore/pkg/metrics"
)

const (
	ordersTable     = "orders"
	orderItemsTable = "order_items"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository создает репозиторий заказов
// Позиции хранятся в order_items и удаляются каскадно вместе с заказом
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create сохраняет заказ вместе с позициями в одной транзакции
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	supplierID, err := parseID(order.SupplierID)
	if err != nil {
		return err
	}

	orderID := uuid.New()
	items, err := toItemModels(orderID, order.Items)
	if err != nil {
		return err
	}

	defer startTimer(metrics.DbOpInsert, ordersTable).ObserveDuration()

	createdAt := now()
	model := orderModel{
		ID:          orderID,
		SupplierID:  supplierID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&model).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return dbError(metrics.DbOpInsert, "create order", err)
	}

	*order = model.toEntity(items)
	return nil
}

// GetByID получает заказ с позициями
func (r *orderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	orderID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	defer startTimer(metrics.DbOpSelect, ordersTable).ObserveDuration()

	db := r.db.WithContext(ctx)

	var models []orderModel
	if err := db.Where("id = ?", orderID).Find(&models).Error; err != nil {
		return nil, dbError(metrics.DbOpSelect, "get order", err)
	}
	if len(models) == 0 {
		return nil, repository.ErrNotFound
	}

	var items []orderItemModel
	if err := db.Where("order_id = ?", orderID).Order("position").Find(&items).Error; err != nil {
		return nil, dbError(metrics.DbOpSelect, "get order items", err)
	}

	order := models[0].toEntity(items)
	return &order, nil
}

// List получает страницу заказов от новых к старым
// Позиции всех заказов страницы загружаются одним запросом
func (r *orderRepository) List(ctx context.Context, offset, limit int64) ([]entity.Order, error) {
	defer startTimer(metrics.DbOpSelect, ordersTable).ObserveDuration()

	db := r.db.WithContext(ctx)

	var models []orderModel
	err := db.Order("created_at DESC, id DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&models).Error
	if err != nil {
		return nil, dbError(metrics.DbOpSelect, "find orders", err)
	}

	orders := make([]entity.Order, 0, len(models))
	if len(models) == 0 {
		return orders, nil
	}

	orderIDs := make([]uuid.UUID, 0, len(models))
	for _, m := range models {
		orderIDs = append(orderIDs, m.ID)
	}

	var items []orderItemModel
	if err := db.Where("order_id IN ?", orderIDs).Order("position").Find(&items).Error; err != nil {
		return nil, dbError(metrics.DbOpSelect, "find order items", err)
	}

	byOrder := make(map[uuid.UUID][]orderItemModel, len(models))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	for _, m := range models {
		orders = append(orders, m.toEntity(byOrder[m.ID]))
	}
	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	defer startTimer(metrics.DbOpCount, ordersTable).ObserveDuration()

	var total int64
	if err := r.db.WithContext(ctx).Model(&orderModel{}).Count(&total).Error; err != nil {
		return 0, dbError(metrics.DbOpCount, "count orders", err)
	}
	return total, nil
}

// Update сохраняет статус, сумму и заменяет позиции заказа
func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderID, err := parseID(order.ID)
	if err != nil {
		return err
	}

	items, err := toItemModels(orderID, order.Items)
	if err != nil {
		return err
	}

	defer startTimer(metrics.DbOpUpdate, ordersTable).ObserveDuration()

	order.UpdatedAt = now()
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&orderModel{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"status":       string(order.Status),
				"total_amount": order.TotalAmount,
				"updated_at":   order.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrNotFound
		}

		if err := tx.Where("order_id = ?", orderID).Delete(&orderItemModel{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})

	if errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if err != nil {
		return dbError(metrics.DbOpUpdate, "update order", err)
	}

	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	orderID, err := parseID(id)
	if err != nil {
		return err
	}

	defer startTimer(metrics.DbOpDelete, ordersTable).ObserveDuration()

	result := r.db.WithContext(ctx).Where("id = ?", orderID).Delete(&orderModel{})
	if result.Error != nil {
		return dbError(metrics.DbOpDelete, "delete order", result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *orderRepository) DeleteAll(ctx context.Context) (int64, error) {
	defer startTimer(metrics.DbOpDelete, ordersTable).ObserveDuration()

	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&orderModel{})
	if result.Error != nil {
		return 0, dbError(metrics.DbOpDelete, "delete orders", result.Error)
	}
	return result.RowsAffected, nil
}

func toItemModels(orderID uuid.UUID, items []entity.OrderItem) ([]orderItemModel, error) {
	models := make([]orderItemModel, 0, len(items))
	for i, item := range items {
		productID, err := parseID(item.ProductID)
		if err != nil {
			return nil, err
		}
		models = append(models, orderItemModel{
			ID:        uuid.New(),
			OrderID:   orderID,
			Position:  i,
			ProductID: productID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return models, nil
}
