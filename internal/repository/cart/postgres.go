package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hourly-quote/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, currency string) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (id, currency, total, state)
VALUES ($1, $2, 0, 'active')
RETURNING id::text, currency, total::text, state, created_at
`
	return scanCartRow(r.pool.QueryRow(ctx, q, uuid.NewString(), currency))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Cart, error) {
	const q = `
SELECT id::text, currency, total::text, state, created_at
FROM carts
WHERE id::text = $1
`
	cart, err := scanCartRow(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const linesQuery = `
SELECT id::text, cart_id::text, product_id::text, hours, quantity, price::text, total::text, custom_fields, created_at
FROM cart_lines
WHERE cart_id = $1
ORDER BY created_at ASC, id ASC
`
	rows, err := r.pool.Query(ctx, linesQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.CartLine
		var price, total string
		var fields []byte
		if err := rows.Scan(
			&line.ID,
			&line.CartID,
			&line.ProductID,
			&line.Hours,
			&line.Quantity,
			&price,
			&total,
			&fields,
			&line.CreatedAt,
		); err != nil {
			return nil, err
		}
		if line.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse line price: %w", err)
		}
		if line.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse line total: %w", err)
		}
		if len(fields) > 0 {
			if err := json.Unmarshal(fields, &line.CustomFields); err != nil {
				return nil, fmt.Errorf("decode line custom fields: %w", err)
			}
		}
		cart.Lines = append(cart.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *postgresRepo) AppendLine(ctx context.Context, cartID string, line domain.CartLine) (*domain.CartLine, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM carts WHERE id::text = $1 AND state = 'active')`, cartID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	fields, err := json.Marshal(line.CustomFields)
	if err != nil {
		return nil, fmt.Errorf("encode custom fields: %w", err)
	}

	line.ID = uuid.NewString()
	line.CartID = cartID
	line.Total = line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))

	const q = `
INSERT INTO cart_lines (id, cart_id, product_id, hours, quantity, price, total, custom_fields)
VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric, $8)
RETURNING created_at
`
	if err := tx.QueryRow(ctx, q,
		line.ID,
		cartID,
		line.ProductID,
		line.Hours,
		line.Quantity,
		line.Price.StringFixed(2),
		line.Total.StringFixed(2),
		fields,
	).Scan(&line.CreatedAt); err != nil {
		return nil, err
	}

	if err := updateCartTotal(ctx, tx, cartID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *postgresRepo) UpdateLinePricing(ctx context.Context, cartID, lineID string, price decimal.Decimal, quantity int) error {
	total := price.Mul(decimal.NewFromInt(int64(quantity)))
	return r.updateLine(ctx, cartID, lineID, `
UPDATE cart_lines
SET price = $1::numeric, quantity = $2, total = $3::numeric
WHERE id::text = $4 AND cart_id::text = $5
`, price.StringFixed(2), quantity, total.StringFixed(2), lineID, cartID)
}

func (r *postgresRepo) UpdateLineHours(ctx context.Context, cartID, lineID string, hours int) error {
	return r.updateLine(ctx, cartID, lineID, `
UPDATE cart_lines
SET hours = $1
WHERE id::text = $2 AND cart_id::text = $3 AND hours > 0
`, hours, lineID, cartID)
}

func (r *postgresRepo) ChangeLineQuantity(ctx context.Context, cartID, lineID string, quantity int) error {
	return r.updateLine(ctx, cartID, lineID, `
UPDATE cart_lines
SET quantity = $1, total = price * $1
WHERE id::text = $2 AND cart_id::text = $3 AND hours = 0
`, quantity, lineID, cartID)
}

func (r *postgresRepo) updateLine(ctx context.Context, cartID, lineID, query string, args ...interface{}) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if err := updateCartTotal(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func scanCartRow(row pgx.Row) (*domain.Cart, error) {
	var cart domain.Cart
	var total string
	if err := row.Scan(&cart.ID, &cart.Currency, &total, &cart.State, &cart.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if cart.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse cart total: %w", err)
	}
	return &cart, nil
}

func updateCartTotal(ctx context.Context, tx pgx.Tx, cartID string) error {
	_, err := tx.Exec(ctx, `
UPDATE carts
SET total = COALESCE((
	SELECT SUM(total)
	FROM cart_lines
	WHERE cart_id::text = $1
), 0)
WHERE id::text = $1
`, cartID)
	return err
}
