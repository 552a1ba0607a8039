package httpserver

import (
	"time"

	"hourly-quote/internal/domain"
	"hourly-quote/internal/service/pricing"
)

type productResponse struct {
	ID            string    `json:"id"`
	Key           string    `json:"key"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         string    `json:"price"`
	Currency      string    `json:"currency"`
	IsHourly      bool      `json:"isHourly"`
	HourlyRate    string    `json:"hourlyRate,omitempty"`
	DisplayPrice  string    `json:"displayPrice"`
	Purchasable   bool      `json:"purchasable"`
	RequiresQuote bool      `json:"requiresQuote"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toProductResponse(p domain.Product) productResponse {
	out := productResponse{
		ID:            p.ID,
		Key:           p.Key,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.StringFixed(2),
		Currency:      p.Currency,
		IsHourly:      p.Billing.IsHourly,
		DisplayPrice:  p.Price.StringFixed(2),
		Purchasable:   pricing.IsPurchasable(p.Billing),
		RequiresQuote: pricing.RequiresQuoteForm(p.Billing),
		CreatedAt:     p.CreatedAt,
	}
	if p.Billing.IsHourly {
		out.HourlyRate = p.Billing.HourlyRate.StringFixed(2)
		// Mirrors the storefront price string for hourly products.
		out.DisplayPrice = p.Billing.HourlyRate.StringFixed(2) + " per hour"
	}
	return out
}

type cartResponse struct {
	ID        string         `json:"id"`
	Currency  string         `json:"currency"`
	Total     string         `json:"total"`
	State     string         `json:"state"`
	CreatedAt time.Time      `json:"createdAt"`
	LineItems []lineResponse `json:"lineItems"`
}

type lineResponse struct {
	ID             string            `json:"id"`
	ProductID      string            `json:"productId"`
	Hours          int               `json:"hours,omitempty"`
	Quantity       int               `json:"quantity"`
	QuantityLocked bool              `json:"quantityLocked"`
	Price          string            `json:"price"`
	Total          string            `json:"total"`
	CustomFields   map[string]string `json:"customFields,omitempty"`
	AddedAt        time.Time         `json:"addedAt"`
}

func toCartResponse(cart domain.Cart) cartResponse {
	lines := make([]lineResponse, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, toLineResponse(l))
	}
	return cartResponse{
		ID:        cart.ID,
		Currency:  cart.Currency,
		Total:     cart.Total.StringFixed(2),
		State:     cart.State,
		CreatedAt: cart.CreatedAt,
		LineItems: lines,
	}
}

func toLineResponse(l domain.CartLine) lineResponse {
	return lineResponse{
		ID:             l.ID,
		ProductID:      l.ProductID,
		Hours:          l.Hours,
		Quantity:       l.Quantity,
		QuantityLocked: l.Hourly(),
		Price:          l.Price.StringFixed(2),
		Total:          l.Total.StringFixed(2),
		CustomFields:   l.CustomFields,
		AddedAt:        l.CreatedAt,
	}
}
