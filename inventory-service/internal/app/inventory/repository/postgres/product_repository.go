package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/repository"
	"inventorystore/pkg/metrics"
)

const productsTable = "products"

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает репозиторий товаров в таблице products
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create сохраняет товар; нарушение уникальности sku возвращается как repository.ErrDuplicateKey
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	defer startTimer(metrics.DbOpInsert, productsTable).ObserveDuration()

	createdAt := now()
	model := productModel{
		ID:        uuid.New(),
		SKU:       product.SKU,
		Name:      product.Name,
		Price:     product.Price,
		Stock:     product.Stock,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateKey
		}
		return dbError(metrics.DbOpInsert, "create product", err)
	}

	*product = model.toEntity()
	return nil
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	defer startTimer(metrics.DbOpSelect, productsTable).ObserveDuration()

	var models []productModel
	if err := r.db.WithContext(ctx).Where("id = ?", productID).Find(&models).Error; err != nil {
		return nil, dbError(metrics.DbOpSelect, "get product", err)
	}
	if len(models) == 0 {
		return nil, repository.ErrNotFound
	}

	product := models[0].toEntity()
	return &product, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	productIDs, err := parseIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(productIDs) == 0 {
		return []entity.Product{}, nil
	}

	defer startTimer(metrics.DbOpSelect, productsTable).ObserveDuration()

	var models []productModel
	if err := r.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&models).Error; err != nil {
		return nil, dbError(metrics.DbOpSelect, "find products", err)
	}
	return toProducts(models), nil
}

// List получает страницу товаров от новых к старым
func (r *productRepository) List(ctx context.Context, offset, limit int64) ([]entity.Product, error) {
	defer startTimer(metrics.DbOpSelect, productsTable).ObserveDuration()

	var models []productModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&models).Error
	if err != nil {
		return nil, dbError(metrics.DbOpSelect, "find products", err)
	}
	return toProducts(models), nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	defer startTimer(metrics.DbOpCount, productsTable).ObserveDuration()

	var total int64
	if err := r.db.WithContext(ctx).Model(&productModel{}).Count(&total).Error; err != nil {
		return 0, dbError(metrics.DbOpCount, "count products", err)
	}
	return total, nil
}

// Update сохраняет все изменяемые поля товара
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productID, err := parseID(product.ID)
	if err != nil {
		return err
	}

	defer startTimer(metrics.DbOpUpdate, productsTable).ObserveDuration()

	product.UpdatedAt = now()
	result := r.db.WithContext(ctx).
		Model(&productModel{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"sku":        product.SKU,
			"name":       product.Name,
			"price":      product.Price,
			"stock":      product.Stock,
			"updated_at": product.UpdatedAt,
		})

	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return repository.ErrDuplicateKey
		}
		return dbError(metrics.DbOpUpdate, "update product", result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete удаляет товар; позиции заказов со ссылкой на него остаются
func (r *productRepository) Delete(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}

	defer startTimer(metrics.DbOpDelete, productsTable).ObserveDuration()

	result := r.db.WithContext(ctx).Where("id = ?", productID).Delete(&productModel{})
	if result.Error != nil {
		return dbError(metrics.DbOpDelete, "delete product", result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *productRepository) DeleteAll(ctx context.Context) (int64, error) {
	defer startTimer(metrics.DbOpDelete, productsTable).ObserveDuration()

	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&productModel{})
	if result.Error != nil {
		return 0, dbError(metrics.DbOpDelete, "delete products", result.Error)
	}
	return result.RowsAffected, nil
}

func toProducts(models []productModel) []entity.Product {
	products := make([]entity.Product, 0, len(models))
	for _, m := range models {
		products = append(products, m.toEntity())
	}
	return products
}
