package queue

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// OrderPlacedEvent is published by the marketplace after a purchase commits.
type OrderPlacedEvent struct {
	OrderID     string    `json:"orderId"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	SellerEmail string    `json:"sellerEmail"`
	BuyerEmail  string    `json:"buyerEmail"`
	Quantity    int       `json:"quantity"`
	TotalPrice  float64   `json:"totalPrice"`
	OrderDate   time.Time `json:"orderDate"`
	Priority    int       `json:"priority,omitempty"`
}

func DecodeOrderPlaced(body []byte) (OrderPlacedEvent, error) {
	var event OrderPlacedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return event, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.OrderID == "" || event.BuyerEmail == "" {
		return event, errors.New("event is missing order id or buyer")
	}
	return event, nil
}
