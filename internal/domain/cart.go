package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        string          `json:"id"`
	Currency  string          `json:"currency"`
	Total     decimal.Decimal `json:"total"`
	State     string          `json:"state"`
	CreatedAt time.Time       `json:"createdAt"`
	Lines     []CartLine      `json:"lineItems,omitempty"`
}

// CartLine is one cart entry. For hourly-billed lines Hours > 0 and the
// reconciler keeps Quantity == Hours and Price == the product's current
// hourly rate. Price is per unit; Total = Price × Quantity.
type CartLine struct {
	ID           string            `json:"id"`
	CartID       string            `json:"cartId"`
	ProductID    string            `json:"productId"`
	Hours        int               `json:"hours,omitempty"`
	Quantity     int               `json:"quantity"`
	Price        decimal.Decimal   `json:"price"`
	Total        decimal.Decimal   `json:"total"`
	CustomFields map[string]string `json:"customFields,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// Hourly reports whether the line was added through the quote flow.
func (l CartLine) Hourly() bool {
	return l.Hours > 0
}
