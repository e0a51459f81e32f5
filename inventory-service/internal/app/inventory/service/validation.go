package service

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator возвращает общий валидатор; имена полей берутся из json тегов
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// fieldMessages сообщения об ошибках валидации
// Ключ - "поле.тег" или просто "поле" для любого нарушенного правила
type fieldMessages map[string]string

// validateStruct проверяет запрос и возвращает ErrValidation с сообщением
// для первого нарушенного правила
func validateStruct(req interface{}, messages fieldMessages) error {
	err := getValidator().Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return validationError("Validation Error: %s", err.Error())
	}

	fe := fieldErrors[0]
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return validationError("%s", msg)
	}
	if msg, ok := messages[fe.Field()]; ok {
		return validationError("%s", msg)
	}
	return validationError("Validation Error: %s failed on the '%s' rule", fe.Field(), fe.Tag())
}

// trimPtr обрезает пробелы в необязательном строковом поле
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
