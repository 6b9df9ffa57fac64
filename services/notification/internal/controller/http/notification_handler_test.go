package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"creatitube/pkg/logger"
	"creatitube/pkg/middleware"
	"creatitube/pkg/models"
	"creatitube/pkg/queue"
	"creatitube/services/notification/internal/entity"
	"creatitube/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockNotificationUseCase is a mock implementation of NotificationUseCase
type MockNotificationUseCase struct {
	mock.Mock
}

func (m *MockNotificationUseCase) GetNotifications(ctx context.Context, email string, limit, offset int) (*entity.Page, error) {
	args := m.Called(email, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Page), args.Error(1)
}

func (m *MockNotificationUseCase) HandleOrderPlaced(ctx context.Context, event queue.OrderPlacedEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

var _ usecase.NotificationUseCase = (*MockNotificationUseCase)(nil)

func setupNotificationTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func signedIn(c *gin.Context) {
	c.Set(middleware.KeyUserEmail, "pete@test.com")
	c.Next()
}

func TestGetNotifications_Unauthorized(t *testing.T) {
	handler := NewNotificationHandler(new(MockNotificationUseCase), logger.New())

	router := setupNotificationTestRouter()
	router.GET("/notifications", handler.GetNotifications)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(t, response["error"], "Unauthorized")
}

func TestGetNotifications_Success(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, logger.New())

	router := setupNotificationTestRouter()
	router.GET("/notifications", signedIn, handler.GetNotifications)

	page := &entity.Page{
		Notifications: []models.Notification{{ID: "order_confirmed:order_1", Type: models.NotificationOrderConfirmed}},
		Count:         1,
		Total:         3,
		Offset:        2,
	}
	mockUseCase.On("GetNotifications", "pete@test.com", 1, 2).Return(page, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications?limit=1&offset=2", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got entity.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, models.NotificationOrderConfirmed, got.Notifications[0].Type)
}

func TestGetNotifications_ClampsQuery(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, logger.New())

	router := setupNotificationTestRouter()
	router.GET("/notifications", signedIn, handler.GetNotifications)

	mockUseCase.On("GetNotifications", "pete@test.com", 50, 0).Return(&entity.Page{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications?limit=500&offset=-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetNotifications_Error(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, logger.New())

	router := setupNotificationTestRouter()
	router.GET("/notifications", signedIn, handler.GetNotifications)

	mockUseCase.On("GetNotifications", "pete@test.com", 50, 0).Return(nil, errors.New("store down"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
