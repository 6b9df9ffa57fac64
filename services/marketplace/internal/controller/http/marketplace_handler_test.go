package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"creatitube/pkg/middleware"
	"creatitube/pkg/models"
	"creatitube/services/marketplace/internal/entity"
	"creatitube/services/marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMarketplaceUseCase is a mock implementation of MarketplaceUseCase
type MockMarketplaceUseCase struct {
	mock.Mock
}

func (m *MockMarketplaceUseCase) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockMarketplaceUseCase) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockMarketplaceUseCase) AddProduct(ctx context.Context, seller models.User, product models.Product) (*models.Product, error) {
	args := m.Called(seller.Email, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockMarketplaceUseCase) AdjustQuantity(ctx context.Context, user models.User, id string, delta int) (*models.Product, error) {
	args := m.Called(user.Email, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockMarketplaceUseCase) ListOrders(ctx context.Context, user models.User) ([]models.Order, error) {
	args := m.Called(user.Email, user.Role)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockMarketplaceUseCase) Purchase(ctx context.Context, buyer models.User, purchase entity.Purchase) (*entity.Receipt, error) {
	args := m.Called(buyer.Email, purchase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Receipt), args.Error(1)
}

func (m *MockMarketplaceUseCase) Dashboard(ctx context.Context) (*entity.Dashboard, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Dashboard), args.Error(1)
}

var _ usecase.MarketplaceUseCase = (*MockMarketplaceUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func as(email string, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.KeyUserEmail, email)
		c.Set(middleware.KeyUserRole, string(role))
		c.Next()
	}
}

func send(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetProduct(t *testing.T) {
	mockUseCase := new(MockMarketplaceUseCase)
	handler := NewMarketplaceHandler(mockUseCase)
	router := setupTestRouter()
	router.GET("/products/:id", handler.GetProduct)

	mockUseCase.On("GetProduct", "prod1").Return(&models.Product{ID: "prod1", Name: "Cabin"}, nil)
	mockUseCase.On("GetProduct", "nope").Return(nil, usecase.ErrProductNotFound)

	w := send(router, "GET", "/products/prod1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Cabin"`)

	w = send(router, "GET", "/products/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "product not found")
}

func TestAddProduct(t *testing.T) {
	mockUseCase := new(MockMarketplaceUseCase)
	handler := NewMarketplaceHandler(mockUseCase)
	router := setupTestRouter()
	router.POST("/products", as("chloe@test.com", models.RoleViewer), handler.AddProduct)

	mockUseCase.On("AddProduct", "chloe@test.com", models.Product{Name: "Owl", Price: 20, Quantity: 1}).
		Return(&models.Product{ID: "prod_1", Name: "Owl"}, nil)

	w := send(router, "POST", "/products", `{"name":"Owl","price":20,"quantity":1}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = send(router, "POST", "/products", `{"price":20}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdjustQuantity_ErrorMapping(t *testing.T) {
	mockUseCase := new(MockMarketplaceUseCase)
	handler := NewMarketplaceHandler(mockUseCase)
	router := setupTestRouter()
	router.PATCH("/products/:id/quantity", as("pete@test.com", models.RoleViewer), handler.AdjustQuantity)

	mockUseCase.On("AdjustQuantity", "pete@test.com", "prod1", -9).
		Return(nil, fmt.Errorf("%w: only 3 left", usecase.ErrInsufficientStock))
	mockUseCase.On("AdjustQuantity", "pete@test.com", "prod2", 1).Return(nil, usecase.ErrForbidden)
	mockUseCase.On("AdjustQuantity", "pete@test.com", "prod3", 1).Return(&models.Product{ID: "prod3", Quantity: 2}, nil)

	assert.Equal(t, http.StatusConflict, send(router, "PATCH", "/products/prod1/quantity", `{"delta":-9}`).Code)
	assert.Equal(t, http.StatusForbidden, send(router, "PATCH", "/products/prod2/quantity", `{"delta":1}`).Code)
	assert.Equal(t, http.StatusOK, send(router, "PATCH", "/products/prod3/quantity", `{"delta":1}`).Code)
}

func TestPurchase(t *testing.T) {
	mockUseCase := new(MockMarketplaceUseCase)
	handler := NewMarketplaceHandler(mockUseCase)
	router := setupTestRouter()
	router.POST("/orders", as("pete@test.com", models.RoleViewer), handler.Purchase)

	body := `{"productId":"prod1","quantity":2,
		"shippingAddress":{"name":"Pete","address":"1 Pixel Way","city":"Austin","zip":"73301","country":"US"},
		"payment":{"cardHolderName":"Pixel Pete","cardNumber":"4242424242421234","expiryDate":"12/29","cvc":"123"}}`

	mockUseCase.On("Purchase", "pete@test.com", mock.MatchedBy(func(p entity.Purchase) bool {
		return p.ProductID == "prod1" && p.Quantity == 2 && p.ShippingAddress.City == "Austin" && p.Payment.CVC == "123"
	})).Return(&entity.Receipt{
		Order:   models.Order{ID: "order_1", TotalPrice: 40, PaymentDetails: models.PaymentDetails{CardNumberLast4: "1234"}},
		Product: models.Product{ID: "prod1", Quantity: 1},
	}, nil).Once()

	w := send(router, "POST", "/orders", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var receipt entity.Receipt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	assert.Equal(t, "order_1", receipt.Order.ID)
	assert.NotContains(t, w.Body.String(), "4242424242421234")
}

func TestPurchase_ErrorMapping(t *testing.T) {
	mockUseCase := new(MockMarketplaceUseCase)
	handler := NewMarketplaceHandler(mockUseCase)
	router := setupTestRouter()
	router.POST("/orders", as("pete@test.com", models.RoleViewer), handler.Purchase)

	mockUseCase.On("Purchase", "pete@test.com", mock.MatchedBy(func(p entity.Purchase) bool { return p.ProductID == "bad" })).
		Return(nil, fmt.Errorf("%w: please enter valid payment details", models.ErrValidation))
	mockUseCase.On("Purchase", "pete@test.com", mock.MatchedBy(func(p entity.Purchase) bool { return p.ProductID == "empty" })).
		Return(nil, usecase.ErrInsufficientStock)

	assert.Equal(t, http.StatusBadRequest, send(router, "POST", "/orders", `{"productId":"bad"}`).Code)
	assert.Equal(t, http.StatusConflict, send(router, "POST", "/orders", `{"productId":"empty"}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(router, "POST", "/orders", `{}`).Code)
}

func TestListOrders(t *testing.T) {
	mockUseCase := new(MockMarketplaceUseCase)
	handler := NewMarketplaceHandler(mockUseCase)
	router := setupTestRouter()
	router.GET("/orders", as("admin@creati.tube", models.RoleAdmin), handler.ListOrders)

	mockUseCase.On("ListOrders", "admin@creati.tube", models.RoleAdmin).Return([]models.Order{{ID: "o1"}, {ID: "o2"}}, nil)

	w := send(router, "GET", "/orders", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 2)
}

func TestDashboard_AdminOnly(t *testing.T) {
	mockUseCase := new(MockMarketplaceUseCase)
	handler := NewMarketplaceHandler(mockUseCase)

	mockUseCase.On("Dashboard").Return(&entity.Dashboard{TotalRevenue: 99.5, TotalOrders: 1, TotalProducts: 2}, nil)

	router := setupTestRouter()
	router.GET("/viewer/dashboard", as("pete@test.com", models.RoleViewer), middleware.RequireAdmin(), handler.Dashboard)
	router.GET("/admin/dashboard", as("admin@creati.tube", models.RoleAdmin), middleware.RequireAdmin(), handler.Dashboard)

	assert.Equal(t, http.StatusForbidden, send(router, "GET", "/viewer/dashboard", "").Code)

	w := send(router, "GET", "/admin/dashboard", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalRevenue":99.5`)
	mockUseCase.AssertNumberOfCalls(t, "Dashboard", 1)
}
