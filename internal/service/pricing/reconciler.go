package pricing

import (
	"context"
	"errors"
	"io"
	"log"

	"hourly-quote/internal/domain"
	"github.com/shopspring/decimal"
)

// Reconciler keeps hourly cart lines consistent with the catalog: on
// every pre-totals pass each hourly line is re-priced from the
// product's CURRENT hourly rate (so admin rate edits reach carts not
// yet checked out) with quantity pinned to the submitted hours. The
// pass is idempotent: a second run over an unchanged cart writes
// nothing and returns an identical snapshot.
type Reconciler struct {
	carts   cartStore
	catalog catalogStore
	logger  *log.Logger
}

type cartStore interface {
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	UpdateLinePricing(ctx context.Context, cartID, lineID string, price decimal.Decimal, quantity int) error
}

type catalogStore interface {
	GetBillingMeta(ctx context.Context, id string) (*domain.BillingMeta, error)
}

func NewReconciler(carts cartStore, catalog catalogStore, logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Reconciler{carts: carts, catalog: catalog, logger: logger}
}

// Reconcile recomputes price and quantity for every hourly line of the
// cart and returns the adjusted snapshot. Lines whose product has gone
// missing or lost its rate keep their last valid price and quantity
// instead of dropping to zero; they are reported through a
// *domain.InvalidHourlyConfigError alongside the snapshot so the
// caller can block checkout with an actionable notice.
func (r *Reconciler) Reconcile(ctx context.Context, cartID string) (*domain.Cart, error) {
	cart, err := r.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	var invalid []string
	changed := false
	for _, line := range cart.Lines {
		if !line.Hourly() {
			continue
		}
		meta, err := r.catalog.GetBillingMeta(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				invalid = append(invalid, line.ProductID)
				continue
			}
			return nil, err
		}
		if !meta.HourlyConfigured() {
			invalid = append(invalid, line.ProductID)
			continue
		}
		if line.Quantity == line.Hours && line.Price.Equal(meta.HourlyRate) {
			continue
		}
		if err := r.carts.UpdateLinePricing(ctx, cartID, line.ID, meta.HourlyRate, line.Hours); err != nil {
			return nil, err
		}
		r.logger.Printf("reconcile: cart=%s line=%s product=%s price=%s quantity=%d", cartID, line.ID, line.ProductID, meta.HourlyRate.StringFixed(2), line.Hours)
		changed = true
	}

	if changed {
		if cart, err = r.carts.GetByID(ctx, cartID); err != nil {
			return nil, err
		}
	}
	if len(invalid) > 0 {
		return cart, &domain.InvalidHourlyConfigError{ProductIDs: invalid}
	}
	return cart, nil
}
