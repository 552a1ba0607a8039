package catalog

import (
	"context"
	"errors"

	"hourly-quote/internal/domain"
	productrepo "hourly-quote/internal/repository/product"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// BillingInput is the admin product-edit save for hourly billing.
type BillingInput struct {
	IsHourly   bool   `json:"isHourly"`
	HourlyRate string `json:"hourlyRate"`
}

// SaveBilling persists the product's hourly-billing settings. The rate
// must parse and may not be negative; zero is stored as-is, leaving
// the product hourly-but-misconfigured, which the quote flow and the
// reconciler both refuse rather than this save.
func (s *Service) SaveBilling(ctx context.Context, productID string, in BillingInput) (*domain.Product, error) {
	rate := decimal.Zero
	if in.HourlyRate != "" {
		var err error
		if rate, err = decimal.NewFromString(in.HourlyRate); err != nil {
			return nil, errors.New("hourlyRate must be a decimal number")
		}
	}
	if rate.IsNegative() {
		return nil, errors.New("hourlyRate must not be negative")
	}
	meta := domain.BillingMeta{ProductID: productID, IsHourly: in.IsHourly, HourlyRate: rate}
	if err := s.repo.SaveBillingMeta(ctx, meta); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, productID)
}
