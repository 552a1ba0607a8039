package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"hourly-quote/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id::text, key, sku, name, COALESCE(description, ''), price::text, currency, is_hourly, hourly_rate::text, created_at
FROM products
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT id::text, key, sku, name, COALESCE(description, ''), price::text, currency, is_hourly, hourly_rate::text, created_at
FROM products
WHERE id::text = $1
`
	row := r.pool.QueryRow(ctx, q, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Exists(ctx context.Context, id string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM products WHERE id::text = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		r.logger.Printf("product repo: exists id=%s error=%v", id, err)
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) GetBillingMeta(ctx context.Context, id string) (*domain.BillingMeta, error) {
	const q = `
SELECT id::text, is_hourly, hourly_rate::text
FROM products
WHERE id::text = $1
`
	var meta domain.BillingMeta
	var rate string
	err := r.pool.QueryRow(ctx, q, id).Scan(&meta.ProductID, &meta.IsHourly, &rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: billing meta id=%s error=%v", id, err)
		return nil, err
	}
	meta.HourlyRate, err = decimal.NewFromString(rate)
	if err != nil {
		return nil, fmt.Errorf("parse hourly rate for product %s: %w", id, err)
	}
	return &meta, nil
}

func (r *postgresRepo) SaveBillingMeta(ctx context.Context, meta domain.BillingMeta) error {
	const q = `
UPDATE products
SET is_hourly = $1, hourly_rate = $2::numeric
WHERE id::text = $3
`
	cmd, err := r.pool.Exec(ctx, q, meta.IsHourly, meta.HourlyRate.StringFixed(2), meta.ProductID)
	if err != nil {
		r.logger.Printf("product repo: save billing id=%s error=%v", meta.ProductID, err)
		return fmt.Errorf("%w: save billing meta: %v", domain.ErrPersistence, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: saved billing id=%s hourly=%v rate=%s", meta.ProductID, meta.IsHourly, meta.HourlyRate.StringFixed(2))
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var price, rate string
	if err := row.Scan(&p.ID, &p.Key, &p.SKU, &p.Name, &p.Description, &price, &p.Currency, &p.Billing.IsHourly, &rate, &p.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse price for product %s: %w", p.ID, err)
	}
	if p.Billing.HourlyRate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("parse hourly rate for product %s: %w", p.ID, err)
	}
	p.Billing.ProductID = p.ID
	return &p, nil
}
