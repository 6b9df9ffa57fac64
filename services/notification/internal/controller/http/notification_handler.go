package http

import (
	"net/http"
	"strconv"

	"creatitube/pkg/logger"
	"creatitube/pkg/middleware"
	"creatitube/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	logger              *logger.Logger
}

func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		logger:              logger,
	}
}

// GetNotifications godoc
// @Summary      Get notifications
// @Description  Order notifications for the signed-in user, newest first
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of notifications (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  entity.Page
// @Failure      401  {object}  map[string]string
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	email := c.GetString(middleware.KeyUserEmail)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 && parsedLimit <= 100 {
			limit = parsedLimit
		}
	}

	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 0 {
			offset = parsedOffset
		}
	}

	page, err := h.notificationUseCase.GetNotifications(c.Request.Context(), email, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}

	c.JSON(http.StatusOK, page)
}
