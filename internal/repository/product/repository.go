package product

import (
	"context"

	"hourly-quote/internal/domain"
)

// Repository is the Catalog Store as the quote flow sees it: product
// existence, per-product billing metadata, and the admin billing save.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Exists(ctx context.Context, id string) (bool, error)
	GetBillingMeta(ctx context.Context, id string) (*domain.BillingMeta, error)
	SaveBillingMeta(ctx context.Context, meta domain.BillingMeta) error
}
