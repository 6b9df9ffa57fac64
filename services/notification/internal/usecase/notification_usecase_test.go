package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"creatitube/pkg/kv"
	"creatitube/pkg/logger"
	"creatitube/pkg/models"
	"creatitube/pkg/queue"
	"creatitube/services/notification/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) NotificationUseCase {
	t.Helper()
	store, err := kv.OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewNotificationUseCase(persistent.NewNotificationRepository(store), logger.New())
}

func order(id string) queue.OrderPlacedEvent {
	return queue.OrderPlacedEvent{
		OrderID:     id,
		ProductID:   "prod1",
		ProductName: "Miniature Wooden Cabin",
		SellerEmail: "chloe@test.com",
		BuyerEmail:  "pete@test.com",
		Quantity:    1,
		TotalPrice:  189.99,
		OrderDate:   time.Now().UTC(),
	}
}

func TestHandleOrderPlaced_NotifiesBothSides(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.HandleOrderPlaced(ctx, order("order_1")))

	seller, err := uc.GetNotifications(ctx, "chloe@test.com", 50, 0)
	require.NoError(t, err)
	require.Equal(t, 1, seller.Total)
	assert.Equal(t, models.NotificationOrderReceived, seller.Notifications[0].Type)
	assert.Contains(t, seller.Notifications[0].Message, "Miniature Wooden Cabin")

	buyer, err := uc.GetNotifications(ctx, "pete@test.com", 50, 0)
	require.NoError(t, err)
	require.Equal(t, 1, buyer.Total)
	assert.Equal(t, models.NotificationOrderConfirmed, buyer.Notifications[0].Type)
	assert.Equal(t, "order_1", buyer.Notifications[0].Data["orderId"])
}

func TestHandleOrderPlaced_RedeliveryIsIdempotent(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.HandleOrderPlaced(ctx, order("order_1")))
	require.NoError(t, uc.HandleOrderPlaced(ctx, order("order_1")))

	page, err := uc.GetNotifications(ctx, "pete@test.com", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestHandleOrderPlaced_NoSeller(t *testing.T) {
	uc := newUseCase(t)
	event := order("order_2")
	event.SellerEmail = ""

	require.NoError(t, uc.HandleOrderPlaced(context.Background(), event))

	page, err := uc.GetNotifications(context.Background(), "pete@test.com", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestGetNotifications_NewestFirstWithPaging(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		require.NoError(t, uc.HandleOrderPlaced(ctx, order(fmt.Sprintf("order_%d", i))))
	}

	page, err := uc.GetNotifications(ctx, "pete@test.com", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 2, page.Count)
	assert.Equal(t, "order_4", page.Notifications[0].Data["orderId"])
	assert.Equal(t, "order_3", page.Notifications[1].Data["orderId"])

	beyond, err := uc.GetNotifications(ctx, "pete@test.com", 10, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond.Notifications)
	assert.Equal(t, 0, beyond.Count)

	empty, err := uc.GetNotifications(ctx, "nobody@test.com", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)
}
