package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"hourly-quote/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Key         string
	SKU         string
	Name        string
	Description string
	Price       string
	Currency    string
	IsHourly    bool
	HourlyRate  string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Key:         "site-inspection",
			SKU:         "SKU-INSPECTION",
			Name:        "On-Site Inspection",
			Description: "Inspection work billed by the hour",
			Price:       "0.00",
			Currency:    "USD",
			IsHourly:    true,
			HourlyRate:  "50.00",
		},
		{
			Key:         "demo-mug",
			SKU:         "SKU-DEMO-MUG",
			Name:        "Demo Mug",
			Description: "Ceramic mug with demo logo",
			Price:       "12.99",
			Currency:    "USD",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Key, err)
		}
	}

	if err := ensureQuoteFields(ctx, pool); err != nil {
		return fmt.Errorf("ensure quote fields: %w", err)
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (key, sku, name, description, price, currency, is_hourly, hourly_rate)
VALUES ($1, $2, $3, NULLIF($4, ''), $5::numeric, $6, $7, $8::numeric)
ON CONFLICT (key) DO UPDATE SET
    sku = EXCLUDED.sku,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    currency = EXCLUDED.currency,
    is_hourly = EXCLUDED.is_hourly,
    hourly_rate = EXCLUDED.hourly_rate
`
	rate := p.HourlyRate
	if rate == "" {
		rate = "0.00"
	}
	_, err := pool.Exec(ctx, q, p.Key, p.SKU, p.Name, p.Description, p.Price, p.Currency, p.IsHourly, rate)
	return err
}

// ensureQuoteFields seeds a starter quote form when none was saved yet.
// An admin-edited schema is never overwritten.
func ensureQuoteFields(ctx context.Context, pool *pgxpool.Pool) error {
	fields := []domain.FieldDefinition{
		{Name: "Preferred Contact", Type: domain.FieldSelect, Options: "Email,Phone", Required: true},
		{Name: "Project Details", Type: domain.FieldTextarea, Required: true},
		{Name: "Reference Photos", Type: domain.FieldFile},
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO quote_field_schema (id, version, fields)
VALUES (1, 1, $1)
ON CONFLICT (id) DO NOTHING
`
	_, err = pool.Exec(ctx, q, raw)
	return err
}
