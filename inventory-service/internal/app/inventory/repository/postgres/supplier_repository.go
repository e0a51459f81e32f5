package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/repository"
	"inventorystore/pkg/metrics"
)

const suppliersTable = "suppliers"

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository создает репозиторий поставщиков в таблице suppliers
func NewSupplierRepository(db *gorm.DB) repository.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	defer startTimer(metrics.DbOpInsert, suppliersTable).ObserveDuration()

	createdAt := now()
	model := supplierModel{
		ID:           uuid.New(),
		Name:         supplier.Name,
		ContactEmail: supplier.Contact.Email,
		ContactPhone: supplier.Contact.Phone,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return dbError(metrics.DbOpInsert, "create supplier", err)
	}

	*supplier = model.toEntity()
	return nil
}

func (r *supplierRepository) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	supplierID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	defer startTimer(metrics.DbOpSelect, suppliersTable).ObserveDuration()

	var models []supplierModel
	if err := r.db.WithContext(ctx).Where("id = ?", supplierID).Find(&models).Error; err != nil {
		return nil, dbError(metrics.DbOpSelect, "get supplier", err)
	}
	if len(models) == 0 {
		return nil, repository.ErrNotFound
	}

	supplier := models[0].toEntity()
	return &supplier, nil
}

func (r *supplierRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Supplier, error) {
	supplierIDs, err := parseIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(supplierIDs) == 0 {
		return []entity.Supplier{}, nil
	}

	defer startTimer(metrics.DbOpSelect, suppliersTable).ObserveDuration()

	var models []supplierModel
	if err := r.db.WithContext(ctx).Where("id IN ?", supplierIDs).Find(&models).Error; err != nil {
		return nil, dbError(metrics.DbOpSelect, "find suppliers", err)
	}
	return toSuppliers(models), nil
}

func (r *supplierRepository) List(ctx context.Context, offset, limit int64) ([]entity.Supplier, error) {
	defer startTimer(metrics.DbOpSelect, suppliersTable).ObserveDuration()

	var models []supplierModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&models).Error
	if err != nil {
		return nil, dbError(metrics.DbOpSelect, "find suppliers", err)
	}
	return toSuppliers(models), nil
}

func (r *supplierRepository) Count(ctx context.Context) (int64, error) {
	defer startTimer(metrics.DbOpCount, suppliersTable).ObserveDuration()

	var total int64
	if err := r.db.WithContext(ctx).Model(&supplierModel{}).Count(&total).Error; err != nil {
		return 0, dbError(metrics.DbOpCount, "count suppliers", err)
	}
	return total, nil
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	supplierID, err := parseID(supplier.ID)
	if err != nil {
		return err
	}

	defer startTimer(metrics.DbOpUpdate, suppliersTable).ObserveDuration()

	supplier.UpdatedAt = now()
	result := r.db.WithContext(ctx).
		Model(&supplierModel{}).
		Where("id = ?", supplierID).
		Updates(map[string]interface{}{
			"name":          supplier.Name,
			"contact_email": supplier.Contact.Email,
			"contact_phone": supplier.Contact.Phone,
			"updated_at":    supplier.UpdatedAt,
		})

	if result.Error != nil {
		return dbError(metrics.DbOpUpdate, "update supplier", result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *supplierRepository) Delete(ctx context.Context, id string) error {
	supplierID, err := parseID(id)
	if err != nil {
		return err
	}

	defer startTimer(metrics.DbOpDelete, suppliersTable).ObserveDuration()

	result := r.db.WithContext(ctx).Where("id = ?", supplierID).Delete(&supplierModel{})
	if result.Error != nil {
		return dbError(metrics.DbOpDelete, "delete supplier", result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *supplierRepository) DeleteAll(ctx context.Context) (int64, error) {
	defer startTimer(metrics.DbOpDelete, suppliersTable).ObserveDuration()

	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&supplierModel{})
	if result.Error != nil {
		return 0, dbError(metrics.DbOpDelete, "delete suppliers", result.Error)
	}
	return result.RowsAffected, nil
}

func toSuppliers(models []supplierModel) []entity.Supplier {
	suppliers := make([]entity.Supplier, 0, len(models))
	for _, m := range models {
		suppliers = append(suppliers, m.toEntity())
	}
	return suppliers
}
