package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/repository"
	"inventorystore/pkg/metrics"
)

const usersTable = "users"

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	defer startTimer(metrics.DbOpInsert, usersTable).ObserveDuration()

	createdAt := now()
	model := userModel{
		ID:        uuid.New(),
		Name:      user.Name,
		Email:     user.Email,
		Age:       user.Age,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return dbError(metrics.DbOpInsert, "create user", err)
	}

	*user = model.toEntity()
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]entity.User, error) {
	defer startTimer(metrics.DbOpSelect, usersTable).ObserveDuration()

	var models []userModel
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, dbError(metrics.DbOpSelect, "find users", err)
	}

	users := make([]entity.User, 0, len(models))
	for _, m := range models {
		users = append(users, m.toEntity())
	}
	return users, nil
}

func (r *userRepository) DeleteAll(ctx context.Context) (int64, error) {
	defer startTimer(metrics.DbOpDelete, usersTable).ObserveDuration()

	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&userModel{})
	if result.Error != nil {
		return 0, dbError(metrics.DbOpDelete, "delete users", result.Error)
	}
	return result.RowsAffected, nil
}
