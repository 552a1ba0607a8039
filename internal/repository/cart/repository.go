package cart

import (
	"context"

	"hourly-quote/internal/domain"
	"github.com/shopspring/decimal"
)

// Repository is the Cart Store. Lines are ordered by insertion; the
// cart total is maintained in the store as the sum of line totals.
type Repository interface {
	Create(ctx context.Context, currency string) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	AppendLine(ctx context.Context, cartID string, line domain.CartLine) (*domain.CartLine, error)

	// UpdateLinePricing rewrites a line's per-unit price and quantity in
	// one transaction, used by the reconciler's pre-totals pass.
	UpdateLinePricing(ctx context.Context, cartID, lineID string, price decimal.Decimal, quantity int) error

	// UpdateLineHours changes the hours of an hourly line; price and
	// quantity follow on the next reconcile pass.
	UpdateLineHours(ctx context.Context, cartID, lineID string, hours int) error

	// ChangeLineQuantity adjusts a regular (non-hourly) line.
	ChangeLineQuantity(ctx context.Context, cartID, lineID string, quantity int) error
}
