package persistent

import (
	"context"

	"creatitube/pkg/kv"
	"creatitube/pkg/models"
)

// MaxInbox is the number of notifications kept per user.
const MaxInbox = 200

type NotificationRepository interface {
	// Prepend adds n to the front of the inbox unless a notification with the
	// same id is already there. It reports whether n was added.
	Prepend(ctx context.Context, email string, n models.Notification) (bool, error)
	List(ctx context.Context, email string) ([]models.Notification, error)
}

type notificationRepository struct {
	store kv.Store
}

func NewNotificationRepository(store kv.Store) NotificationRepository {
	return &notificationRepository{store: store}
}

func (r *notificationRepository) Prepend(ctx context.Context, email string, n models.Notification) (bool, error) {
	key := kv.NotificationsKey(email)
	added := false
	err := r.store.Update(ctx, []string{key}, func(tx kv.Tx) error {
		added = false
		inbox, err := kv.Load[[]models.Notification](tx, key)
		if err != nil {
			return err
		}
		for _, existing := range inbox {
			if existing.ID == n.ID {
				return nil
			}
		}
		inbox = append([]models.Notification{n}, inbox...)
		if len(inbox) > MaxInbox {
			inbox = inbox[:MaxInbox]
		}
		added = true
		return tx.Put(key, inbox)
	})
	return added, err
}

func (r *notificationRepository) List(ctx context.Context, email string) ([]models.Notification, error) {
	inbox, err := kv.Read[[]models.Notification](ctx, r.store, kv.NotificationsKey(email))
	if err != nil {
		return nil, err
	}
	if inbox == nil {
		inbox = []models.Notification{}
	}
	return inbox, nil
}
