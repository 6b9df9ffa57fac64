package usecase

import (
	"context"
	"fmt"
	"time"

	"creatitube/pkg/logger"
	"creatitube/pkg/models"
	"creatitube/pkg/queue"
	"creatitube/services/notification/internal/entity"
	"creatitube/services/notification/internal/repo/persistent"
)

type NotificationUseCase interface {
	GetNotifications(ctx context.Context, email string, limit, offset int) (*entity.Page, error)
	// HandleOrderPlaced notifies the seller and the buyer. Redelivered
	// events do not produce duplicates.
	HandleOrderPlaced(ctx context.Context, event queue.OrderPlacedEvent) error
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	logger           *logger.Logger
	now              func() time.Time
}

func NewNotificationUseCase(notificationRepo persistent.NotificationRepository, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (uc *notificationUseCase) GetNotifications(ctx context.Context, email string, limit, offset int) (*entity.Page, error) {
	inbox, err := uc.notificationRepo.List(ctx, email)
	if err != nil {
		uc.logger.Error("Failed to read notifications for %s: %v", email, err)
		return nil, fmt.Errorf("failed to get notifications")
	}

	page := &entity.Page{Total: len(inbox), Offset: offset, Notifications: []models.Notification{}}
	if offset < len(inbox) {
		end := offset + limit
		if end > len(inbox) {
			end = len(inbox)
		}
		page.Notifications = inbox[offset:end]
	}
	page.Count = len(page.Notifications)
	return page, nil
}

func (uc *notificationUseCase) HandleOrderPlaced(ctx context.Context, event queue.OrderPlacedEvent) error {
	data := map[string]interface{}{
		"orderId":    event.OrderID,
		"productId":  event.ProductID,
		"quantity":   event.Quantity,
		"totalPrice": event.TotalPrice,
	}

	if event.SellerEmail != "" {
		received := models.Notification{
			ID:        fmt.Sprintf("%s:%s", models.NotificationOrderReceived, event.OrderID),
			Type:      models.NotificationOrderReceived,
			Title:     "New order",
			Message:   fmt.Sprintf("%s ordered %d x %s ($%.2f)", event.BuyerEmail, event.Quantity, event.ProductName, event.TotalPrice),
			Data:      data,
			CreatedAt: uc.now(),
		}
		if err := uc.deliver(ctx, event.SellerEmail, received); err != nil {
			return err
		}
	}

	confirmed := models.Notification{
		ID:        fmt.Sprintf("%s:%s", models.NotificationOrderConfirmed, event.OrderID),
		Type:      models.NotificationOrderConfirmed,
		Title:     "Order confirmed",
		Message:   fmt.Sprintf("Your order for %d x %s is confirmed", event.Quantity, event.ProductName),
		Data:      data,
		CreatedAt: uc.now(),
	}
	return uc.deliver(ctx, event.BuyerEmail, confirmed)
}

func (uc *notificationUseCase) deliver(ctx context.Context, email string, n models.Notification) error {
	added, err := uc.notificationRepo.Prepend(ctx, email, n)
	if err != nil {
		uc.logger.Error("[ORDER QUEUE] Failed to store %s for %s: %v", n.Type, email, err)
		return fmt.Errorf("failed to store notification: %w", err)
	}
	if added {
		uc.logger.Info("[ORDER QUEUE] %s delivered to %s", n.Type, email)
	}
	return nil
}
