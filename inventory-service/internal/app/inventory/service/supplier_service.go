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

const msgSupplierFieldsRequired = "Please provide name and contact email"

var createSupplierMessages = fieldMessages{
	"name":    msgSupplierFieldsRequired,
	"contact": msgSupplierFieldsRequired,
	"email":   msgSupplierFieldsRequired,
}

// SupplierService бизнес-логика поставщиков
type SupplierService struct {
	supplierRepo repository.SupplierRepository
	events       eventEmitter
}

func NewSupplierService(supplierRepo repository.SupplierRepository, publisher infrastructure.MessagePublisher) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		events:       newEventEmitter(publisher),
	}
}

func (s *SupplierService) ListSuppliers(ctx context.Context, params entity.ListParams) (*entity.Page[entity.Supplier], error) {
	params = params.Normalize()

	suppliers, err := s.supplierRepo.List(ctx, params.Offset(), int64(params.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}

	total, err := s.supplierRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count suppliers: %w", err)
	}

	return &entity.Page[entity.Supplier]{
		Items: suppliers,
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	}, nil
}

func (s *SupplierService) GetSupplier(ctx context.Context, id string) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, "Supplier", "get supplier")
	}
	return supplier, nil
}

// GetSuppliers возвращает найденных поставщиков по ID, реализует SupplierDirectory
func (s *SupplierService) GetSuppliers(ctx context.Context, ids []string) (map[string]*entity.Supplier, error) {
	suppliers, err := s.supplierRepo.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return nil, newError(ErrInvalidID, "Invalid supplier ID")
		}
		return nil, fmt.Errorf("failed to get suppliers: %w", err)
	}

	result := make(map[string]*entity.Supplier, len(suppliers))
	for i := range suppliers {
		result[suppliers[i].ID] = &suppliers[i]
	}
	return result, nil
}

func (s *SupplierService) CreateSupplier(ctx context.Context, req *entity.CreateSupplierRequest) (*entity.Supplier, error) {
	normalized := *req
	normalized.Name = strings.TrimSpace(req.Name)
	if req.Contact != nil {
		contact := entity.ContactRequest{
			Email: normalizeEmail(req.Contact.Email),
			Phone: strings.TrimSpace(req.Contact.Phone),
		}
		normalized.Contact = &contact
	}

	if err := validateStruct(&normalized, createSupplierMessages); err != nil {
		return nil, err
	}

	supplier := &entity.Supplier{
		Name: normalized.Name,
		Contact: entity.Contact{
			Email: normalized.Contact.Email,
			Phone: normalized.Contact.Phone,
		},
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	s.events.emit(ctx, entitySupplier, opCreated, supplier.ID, supplier)

	return supplier, nil
}

// UpdateSupplier объединяет переданные поля с текущей записью
func (s *SupplierService) UpdateSupplier(ctx context.Context, id string, req *entity.UpdateSupplierRequest) (*entity.Supplier, error) {
	name := trimPtr(req.Name)
	if name != nil && *name == "" {
		return nil, validationError("Supplier name cannot be empty")
	}

	var email, phone *string
	if req.Contact != nil {
		if req.Contact.Email != nil {
			normalized := normalizeEmail(*req.Contact.Email)
			if normalized == "" {
				return nil, validationError("Contact email cannot be empty")
			}
			email = &normalized
		}
		phone = trimPtr(req.Contact.Phone)
	}

	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateLookupError(err, "Supplier", "get supplier")
	}

	if name != nil {
		supplier.Name = *name
	}
	if email != nil {
		supplier.Contact.Email = *email
	}
	if phone != nil {
		supplier.Contact.Phone = *phone
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, translateLookupError(err, "Supplier", "update supplier")
	}

	s.events.emit(ctx, entitySupplier, opUpdated, supplier.ID, supplier)

	return supplier, nil
}

// DeleteSupplier удаляет поставщика; заказы сохраняют ссылку на него
func (s *SupplierService) DeleteSupplier(ctx context.Context, id string) error {
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return translateLookupError(err, "Supplier", "delete supplier")
	}

	s.events.emit(ctx, entitySupplier, opDeleted, id, nil)
	return nil
}
