package handler

import (
	"net/http"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/service"

	"github.com/gin-gonic/gin"
)

// OrderHandler отдает заказы с уже разрешенными ссылками на товары и поставщика
type OrderHandler struct {
	orderService service.OrderServiceInterface
}

func NewOrderHandler(orderService service.OrderServiceInterface) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type updateStatusRequest struct {
	Status entity.OrderStatus `json:"status"`
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, err := h.orderService.ListOrders(c.Request.Context(), parseListParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondPage(c, page)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req entity.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, order)
}

// UpdateOrder меняет статус и/или полностью заменяет позиции заказа
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req entity.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondDeleted(c, "Order")
}
