package handler

import (
	"errors"
	"net/http"
	"strconv"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/service"
	"inventorystore/pkg/logger"

	"github.com/gin-gonic/gin"
)

const invalidBodyMessage = "Invalid request body"

// emptyObject сериализуется в {} для ответа на удаление
var emptyObject = struct{}{}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, entity.Response{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, entity.Response{Success: true, Message: message, Data: data})
}

func respondDeleted(c *gin.Context, entityName string) {
	respondMessage(c, http.StatusOK, entityName+" deleted successfully", emptyObject)
}

func respondFailure(c *gin.Context, status int, message string) {
	c.JSON(status, entity.Response{Success: false, Error: message})
}

func respondPage[T any](c *gin.Context, page *entity.Page[T]) {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	count := len(items)
	total := page.Total
	current := page.Page
	pages := page.Pages()

	c.JSON(http.StatusOK, entity.Response{
		Success: true,
		Count:   &count,
		Total:   &total,
		Page:    &current,
		Pages:   &pages,
		Data:    items,
	})
}

// respondError переводит ошибку сервиса в HTTP статус
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondFailure(c, http.StatusNotFound, svcErr.Message)
			return
		case errors.Is(err, service.ErrValidation),
			errors.Is(err, service.ErrConflict),
			errors.Is(err, service.ErrInvalidID):
			respondFailure(c, http.StatusBadRequest, svcErr.Message)
			return
		}
	}

	logger.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Request failed")
	respondFailure(c, http.StatusInternalServerError, "Server Error: "+err.Error())
}

// parseListParams читает page и limit; нечисловые значения заменяются значениями по умолчанию
func parseListParams(c *gin.Context) entity.ListParams {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return entity.ListParams{Page: page, Limit: limit}.Normalize()
}
