package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"imageUrl"`
	SellerEmail string  `json:"sellerEmail"`
}

func (p *Product) EnsureID() {
	if p.ID == "" {
		p.ID = "prod_" + uuid.New().String()
	}
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if p.Price <= 0 || p.Quantity <= 0 {
		return fmt.Errorf("%w: please enter a valid price and quantity for the item", ErrValidation)
	}
	return nil
}

type ShippingAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

func (a ShippingAddress) Validate() error {
	for _, field := range []string{a.Name, a.Address, a.City, a.Zip, a.Country} {
		if strings.TrimSpace(field) == "" {
			return fmt.Errorf("%w: please fill out all shipping fields", ErrValidation)
		}
	}
	return nil
}

// PaymentDetails is what survives of a card after checkout.
type PaymentDetails struct {
	CardHolderName  string `json:"cardHolderName"`
	CardNumberLast4 string `json:"cardNumberLast4"`
}

// Order is immutable once stored.
type Order struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"productId"`
	ProductName     string          `json:"productName"`
	SellerEmail     string          `json:"sellerEmail,omitempty"`
	BuyerEmail      string          `json:"buyerEmail"`
	Quantity        int             `json:"quantity"`
	TotalPrice      float64         `json:"totalPrice"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentDetails  PaymentDetails  `json:"paymentDetails"`
	OrderDate       time.Time       `json:"orderDate"`
}

func (o *Order) EnsureID() {
	if o.ID == "" {
		o.ID = "order_" + uuid.New().String()
	}
}

// FindProduct returns the index of the product with id, or -1.
func FindProduct(products []Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}
