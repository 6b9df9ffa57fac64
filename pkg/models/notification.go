package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationOrderReceived  NotificationType = "order_received"
	NotificationOrderConfirmed NotificationType = "order_confirmed"
)

type Notification struct {
	ID        string                 `json:"id"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

func (n *Notification) EnsureID() {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
}
