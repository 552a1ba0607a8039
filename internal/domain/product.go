package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Key         string          `json:"key"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Billing     BillingMeta     `json:"billing"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// BillingMeta is the per-product hourly-billing configuration, edited
// only through the admin product save.
type BillingMeta struct {
	ProductID  string          `json:"-"`
	IsHourly   bool            `json:"isHourly"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
}

// HourlyConfigured reports whether the product is hourly-billed with a
// usable rate. A quote must never be accepted when this is false.
func (m BillingMeta) HourlyConfigured() bool {
	return m.IsHourly && m.HourlyRate.IsPositive()
}
