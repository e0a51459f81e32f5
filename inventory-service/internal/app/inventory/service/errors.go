package service

import (
	"errors"
	"fmt"
	"strings"

	"inventorystore/inventory-service/internal/app/inventory/repository"
)

var (
	// Виды ошибок бизнес-логики для обработки в handlers
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrInvalidID  = errors.New("invalid id")
)

// Error ошибка сервиса с сообщением для клиента
// Kind - один из ErrValidation, ErrNotFound, ErrConflict, ErrInvalidID
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...interface{}) *Error {
	return newError(ErrValidation, format, args...)
}

// translateLookupError переводит ошибки чтения одной записи из репозитория
// entityName используется в сообщениях: "Product not found", "Invalid product ID"
func translateLookupError(err error, entityName, action string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return newError(ErrNotFound, "%s not found", entityName)
	case errors.Is(err, repository.ErrInvalidID):
		return newError(ErrInvalidID, "Invalid %s ID", lowerFirst(entityName))
	default:
		return fmt.Errorf("failed to %s: %w", action, err)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
