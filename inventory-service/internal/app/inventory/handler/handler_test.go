package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inventorystore/inventory-service/internal/app/inventory/entity"
	"inventorystore/inventory-service/internal/app/inventory/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	products  *MockProductService
	suppliers *MockSupplierService
	orders    *MockOrderService
	users     *MockUserService
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Total   *int64          `json:"total"`
	Page    *int            `json:"page"`
	Pages   *int64          `json:"pages"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setupTestRouter(origins ...string) (*gin.Engine, *testServices) {
	gin.SetMode(gin.TestMode)

	svc := &testServices{
		products:  new(MockProductService),
		suppliers: new(MockSupplierService),
		orders:    new(MockOrderService),
		users:     new(MockUserService),
	}

	router := SetupRoutes(Handlers{
		Products:  NewProductHandler(svc.products),
		Suppliers: NewSupplierHandler(svc.suppliers),
		Orders:    NewOrderHandler(svc.orders),
		Users:     NewUserHandler(svc.users),
	}, origins)

	return router, svc
}

func perform(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = new(bytes.Buffer)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func notFound(message string) error {
	return &service.Error{Kind: service.ErrNotFound, Message: message}
}

func TestRootAndHealth(t *testing.T) {
	router, _ := setupTestRouter()

	w, resp := perform(t, router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Inventory Store API is running!", resp.Message)
	assert.Contains(t, w.Body.String(), `"timestamp"`)

	w, _ = perform(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"inventory-service"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestNoRoute(t *testing.T) {
	router, _ := setupTestRouter()

	w, resp := perform(t, router, http.MethodGet, "/api/unknown", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Route not found", resp.Error)
}

func TestListProducts_Envelope(t *testing.T) {
	router, svc := setupTestRouter()

	page := &entity.Page[entity.Product]{
		Items: []entity.Product{{ID: "p1", SKU: "A-1"}, {ID: "p2", SKU: "A-2"}},
		Total: 12,
		Page:  2,
		Limit: 10,
	}
	svc.products.On("ListProducts", mock.Anything, entity.ListParams{Page: 2, Limit: 10}).Return(page, nil)

	w, resp := perform(t, router, http.MethodGet, "/api/products?page=2", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Count)
	require.NotNil(t, resp.Total)
	require.NotNil(t, resp.Page)
	require.NotNil(t, resp.Pages)
	assert.Equal(t, 2, *resp.Count)
	assert.Equal(t, int64(12), *resp.Total)
	assert.Equal(t, 2, *resp.Page)
	assert.Equal(t, int64(2), *resp.Pages)

	var products []entity.Product
	require.NoError(t, json.Unmarshal(resp.Data, &products))
	assert.Len(t, products, 2)
	svc.products.AssertExpectations(t)
}

func TestListProducts_InvalidPagingFallsBackToDefaults(t *testing.T) {
	router, svc := setupTestRouter()

	svc.products.On("ListProducts", mock.Anything, entity.ListParams{Page: 1, Limit: 10}).
		Return(&entity.Page[entity.Product]{Page: 1, Limit: 10}, nil)

	w, resp := perform(t, router, http.MethodGet, "/api/products?page=abc&limit=-5", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(resp.Data))
	assert.Equal(t, 0, *resp.Count)
	svc.products.AssertExpectations(t)
}

func TestListProducts_HugePageIsClamped(t *testing.T) {
	router, svc := setupTestRouter()

	svc.products.On("ListProducts", mock.Anything, mock.MatchedBy(func(params entity.ListParams) bool {
		return params.Page == entity.MaxPage && params.Limit == 20 && params.Offset() > 0
	})).Return(&entity.Page[entity.Product]{Total: 3, Page: entity.MaxPage, Limit: 20}, nil)

	w, resp := perform(t, router, http.MethodGet, "/api/products?page=922337203685477581&limit=20", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.JSONEq(t, `[]`, string(resp.Data))
	svc.products.AssertExpectations(t)
}

func TestListSuppliers_LimitIsCapped(t *testing.T) {
	router, svc := setupTestRouter()

	svc.suppliers.On("ListSuppliers", mock.Anything, entity.ListParams{Page: 1, Limit: entity.MaxLimit}).
		Return(&entity.Page[entity.Supplier]{Page: 1, Limit: entity.MaxLimit}, nil)

	w, _ := perform(t, router, http.MethodGet, "/api/suppliers?limit=100000", "")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.suppliers.AssertExpectations(t)
}

func TestGetProduct_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "not found",
			err:        notFound("Product not found"),
			wantStatus: http.StatusNotFound,
			wantError:  "Product not found",
		},
		{
			name:       "invalid id",
			err:        &service.Error{Kind: service.ErrInvalidID, Message: "Invalid product ID"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid product ID",
		},
		{
			name:       "unexpected",
			err:        errors.New("failed to get product: connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Server Error: failed to get product: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := setupTestRouter()
			svc.products.On("GetProduct", mock.Anything, "p1").Return(nil, tt.err)

			w, resp := perform(t, router, http.MethodGet, "/api/products/p1", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}

func TestCreateProduct_Success(t *testing.T) {
	router, svc := setupTestRouter()

	product := &entity.Product{ID: "p1", SKU: "WID-001", Name: "Widget", Price: 2.5, Stock: 10}
	svc.products.On("CreateProduct", mock.Anything, mock.MatchedBy(func(req *entity.CreateProductRequest) bool {
		return req.SKU == "WID-001" && req.Price != nil && *req.Price == 2.5 && req.Stock != nil && *req.Stock == 10
	})).Return(product, nil)

	w, resp := perform(t, router, http.MethodPost, "/api/products",
		`{"sku":"WID-001","name":"Widget","price":2.5,"stock":10}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)

	var got entity.Product
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, "p1", got.ID)
	svc.products.AssertExpectations(t)
}

func TestCreateProduct_InvalidBody(t *testing.T) {
	router, svc := setupTestRouter()

	w, resp := perform(t, router, http.MethodPost, "/api/products", `{"sku":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", resp.Error)
	svc.products.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestCreateProduct_ConflictIsBadRequest(t *testing.T) {
	router, svc := setupTestRouter()

	svc.products.On("CreateProduct", mock.Anything, mock.Anything).
		Return(nil, &service.Error{Kind: service.ErrConflict, Message: "SKU already exists"})

	w, resp := perform(t, router, http.MethodPost, "/api/products",
		`{"sku":"WID-001","name":"Widget","price":1,"stock":1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SKU already exists", resp.Error)
}

func TestUpdateProduct_ValidationError(t *testing.T) {
	router, svc := setupTestRouter()

	svc.products.On("UpdateProduct", mock.Anything, "p1", mock.AnythingOfType("*entity.UpdateProductRequest")).
		Return(nil, &service.Error{Kind: service.ErrValidation, Message: "Price cannot be negative"})

	w, resp := perform(t, router, http.MethodPut, "/api/products/p1", `{"price":-1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Price cannot be negative", resp.Error)
}

func TestDeleteProduct(t *testing.T) {
	router, svc := setupTestRouter()
	svc.products.On("DeleteProduct", mock.Anything, "p1").Return(nil)
	svc.products.On("DeleteProduct", mock.Anything, "missing").Return(notFound("Product not found"))

	w, resp := perform(t, router, http.MethodDelete, "/api/products/p1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Product deleted successfully", resp.Message)
	assert.JSONEq(t, `{}`, string(resp.Data))

	w, resp = perform(t, router, http.MethodDelete, "/api/products/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", resp.Error)
}

func TestSupplierRoutes(t *testing.T) {
	router, svc := setupTestRouter()

	supplier := &entity.Supplier{ID: "s1", Name: "Acme", Contact: entity.Contact{Email: "sales@acme.test"}}
	svc.suppliers.On("CreateSupplier", mock.Anything, mock.AnythingOfType("*entity.CreateSupplierRequest")).Return(supplier, nil)
	svc.suppliers.On("GetSupplier", mock.Anything, "s1").Return(supplier, nil)
	svc.suppliers.On("DeleteSupplier", mock.Anything, "s1").Return(nil)

	w, _ := perform(t, router, http.MethodPost, "/api/suppliers", `{"name":"Acme","contact":{"email":"sales@acme.test"}}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, resp := perform(t, router, http.MethodGet, "/api/suppliers/s1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"email":"sales@acme.test"`)

	w, resp = perform(t, router, http.MethodDelete, "/api/suppliers/s1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Supplier deleted successfully", resp.Message)
	svc.suppliers.AssertExpectations(t)
}

func TestCreateOrder_ResolvedView(t *testing.T) {
	router, svc := setupTestRouter()

	view := &entity.OrderView{
		ID: "o1",
		Items: []entity.OrderItemView{
			{Product: &entity.ProductRef{ID: "p1", Name: "Widget", SKU: "WID-001"}, Quantity: 2, Price: 10},
			{Product: &entity.ProductRef{ID: "p2", Name: "Gadget", SKU: "GAD-014"}, Quantity: 1, Price: 5},
		},
		Supplier:    &entity.SupplierRef{ID: "s1", Name: "Acme", Contact: entity.Contact{Email: "sales@acme.test"}},
		Status:      entity.OrderStatusPending,
		TotalAmount: 25,
	}
	svc.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req *entity.CreateOrderRequest) bool {
		return len(req.Items) == 2 && req.SupplierID == "s1" && req.Items[1].Price == nil
	})).Return(view, nil)

	w, resp := perform(t, router, http.MethodPost, "/api/orders",
		`{"supplierId":"s1","items":[{"productId":"p1","quantity":2,"price":10},{"productId":"p2","quantity":1}]}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, float64(25), got["totalAmount"])
	assert.Equal(t, "pending", got["status"])
	supplier := got["supplierId"].(map[string]interface{})
	assert.Equal(t, "Acme", supplier["name"])
	items := got["items"].([]interface{})
	first := items[0].(map[string]interface{})["productId"].(map[string]interface{})
	assert.Equal(t, "WID-001", first["sku"])
}

func TestCreateOrder_MissingProduct(t *testing.T) {
	router, svc := setupTestRouter()

	svc.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, notFound("Product not found: p9"))

	w, resp := perform(t, router, http.MethodPost, "/api/orders",
		`{"supplierId":"s1","items":[{"productId":"p9","quantity":1}]}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found: p9", resp.Error)
}

func TestGetOrder_DanglingReferencesAreNull(t *testing.T) {
	router, svc := setupTestRouter()

	view := &entity.OrderView{
		ID:     "o1",
		Items:  []entity.OrderItemView{{Product: nil, Quantity: 1, Price: 3}},
		Status: entity.OrderStatusCancelled,
	}
	svc.orders.On("GetOrder", mock.Anything, "o1").Return(view, nil)

	w, resp := perform(t, router, http.MethodGet, "/api/orders/o1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"supplierId":null`)
	assert.Contains(t, string(resp.Data), `"productId":null`)
}

func TestUpdateOrderStatus(t *testing.T) {
	router, svc := setupTestRouter()

	svc.orders.On("UpdateOrderStatus", mock.Anything, "o1", entity.OrderStatus("shipped")).
		Return(nil, &service.Error{Kind: service.ErrValidation, Message: "Invalid status. Must be: pending, completed, or cancelled"})
	svc.orders.On("UpdateOrderStatus", mock.Anything, "o1", entity.OrderStatusCompleted).
		Return(&entity.OrderView{ID: "o1", Status: entity.OrderStatusCompleted}, nil)

	w, resp := perform(t, router, http.MethodPatch, "/api/orders/o1/status", `{"status":"shipped"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid status. Must be: pending, completed, or cancelled", resp.Error)

	w, resp = perform(t, router, http.MethodPatch, "/api/orders/o1/status", `{"status":"completed"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"status":"completed"`)
	svc.orders.AssertExpectations(t)
}

func TestUpdateOrder_ReplacesItems(t *testing.T) {
	router, svc := setupTestRouter()

	svc.orders.On("UpdateOrder", mock.Anything, "o1", mock.MatchedBy(func(req *entity.UpdateOrderRequest) bool {
		return req.Status == nil && len(req.Items) == 1 && req.Items[0].Quantity == 4
	})).Return(&entity.OrderView{ID: "o1", TotalAmount: 40}, nil)

	w, resp := perform(t, router, http.MethodPut, "/api/orders/o1", `{"items":[{"productId":"p1","quantity":4}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"totalAmount":40`)
	svc.orders.AssertExpectations(t)
}

func TestListOrders_ServerError(t *testing.T) {
	router, svc := setupTestRouter()

	svc.orders.On("ListOrders", mock.Anything, mock.Anything).Return(nil, errors.New("failed to list orders: timeout"))

	w, resp := perform(t, router, http.MethodGet, "/api/orders", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server Error: failed to list orders: timeout", resp.Error)
}

func TestUsers(t *testing.T) {
	router, svc := setupTestRouter()

	user := &entity.User{ID: "u1", Name: "Ann", Email: "ann@example.com"}
	svc.users.On("CreateUser", mock.Anything, mock.AnythingOfType("*entity.CreateUserRequest")).Return(user, nil)
	svc.users.On("ListUsers", mock.Anything).Return([]entity.User{*user}, nil)

	w, resp := perform(t, router, http.MethodPost, "/api/users", `{"name":"Ann","email":"ANN@example.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User created and saved to database!", resp.Message)

	w, resp = perform(t, router, http.MethodGet, "/api/users", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Found 1 users in database", resp.Message)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 1, *resp.Count)
}

func TestCORS(t *testing.T) {
	t.Run("configured origin", func(t *testing.T) {
		router, _ := setupTestRouter("http://shop.example.com")

		req, _ := http.NewRequest(http.MethodOptions, "/api/products", nil)
		req.Header.Set("Origin", "http://shop.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin rejected", func(t *testing.T) {
		router, _ := setupTestRouter("http://shop.example.com")

		req, _ := http.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("wildcard", func(t *testing.T) {
		router, _ := setupTestRouter("*")

		req, _ := http.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://any.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
