package entity

import (
	"fmt"
	"regexp"
	"strings"

	"creatitube/pkg/models"
)

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

// Payment is the card as entered at checkout. Only the holder name and the
// last four digits are ever stored.
type Payment struct {
	CardHolderName string `json:"cardHolderName"`
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVC            string `json:"cvc"`
}

// Digits returns the card number without spaces.
func (p Payment) Digits() string {
	return strings.ReplaceAll(p.CardNumber, " ", "")
}

func (p Payment) Validate() error {
	digits := p.Digits()
	if strings.TrimSpace(p.CardHolderName) == "" ||
		len(digits) != 16 || !allDigits(digits) ||
		!expiryPattern.MatchString(p.ExpiryDate) ||
		len(p.CVC) != 3 || !allDigits(p.CVC) {
		return fmt.Errorf("%w: please enter valid payment details", models.ErrValidation)
	}
	return nil
}

func (p Payment) Details() models.PaymentDetails {
	digits := p.Digits()
	return models.PaymentDetails{
		CardHolderName:  strings.TrimSpace(p.CardHolderName),
		CardNumberLast4: digits[len(digits)-4:],
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

type Purchase struct {
	ProductID       string
	Quantity        int
	ShippingAddress models.ShippingAddress
	Payment         Payment
}

// Receipt is the stored order together with the product after its stock was
// decremented.
type Receipt struct {
	Order   models.Order   `json:"order"`
	Product models.Product `json:"product"`
}

type Dashboard struct {
	TotalRevenue  float64          `json:"totalRevenue"`
	TotalOrders   int              `json:"totalOrders"`
	TotalProducts int              `json:"totalProducts"`
	Orders        []models.Order   `json:"orders"`
	Products      []models.Product `json:"products"`
}
