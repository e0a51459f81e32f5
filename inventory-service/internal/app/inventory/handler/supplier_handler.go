package handler

import (
	"net/http"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/service"

	"github.com/gin-gonic/gin"
)

type SupplierHandler struct {
	supplierService service.SupplierServiceInterface
}

func NewSupplierHandler(supplierService service.SupplierServiceInterface) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	page, err := h.supplierService.ListSuppliers(c.Request.Context(), parseListParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondPage(c, page)
}

func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	supplier, err := h.supplierService.GetSupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, supplier)
}

func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req entity.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, supplier)
}

func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	var req entity.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, supplier)
}

func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	if err := h.supplierService.DeleteSupplier(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondDeleted(c, "Supplier")
}
