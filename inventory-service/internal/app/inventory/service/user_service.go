package service

import (
	"context"
	"fmt"
	"strings"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/repository"
	"inventorystore/pkg/metrics"
)

var createUserMessages = fieldMessages{
	"name":  "Please provide name and email",
	"email": "Please provide name and email",
	"age":   "Age cannot be negative",
}

// UserService минимальный ресурс пользователей
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser сохраняет пользователя; email приводится к нижнему регистру
func (s *UserService) CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error) {
	normalized := *req
	normalized.Name = strings.TrimSpace(req.Name)
	normalized.Email = normalizeEmail(req.Email)

	if err := validateStruct(&normalized, createUserMessages); err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:  normalized.Name,
		Email: normalized.Email,
		Age:   normalized.Age,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.RecordWrite(entityUser, opCreated)
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
