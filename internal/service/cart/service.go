package cart

import (
	"context"
	"errors"
	"strings"

	"hourly-quote/internal/domain"
	cartrepo "hourly-quote/internal/repository/cart"
)

type Service struct {
	repo cartrepo.Repository
}

func New(repo cartrepo.Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Currency string `json:"currency"`
}

// ChangeLineInput updates one cart line. Exactly one of Hours or
// Quantity applies: hourly lines only accept hours (quantity is
// derived), regular lines only accept quantity.
type ChangeLineInput struct {
	Hours    *int `json:"hours,omitempty"`
	Quantity *int `json:"quantity,omitempty"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Cart, error) {
	if strings.TrimSpace(in.Currency) == "" {
		return nil, errors.New("currency required")
	}
	return s.repo.Create(ctx, strings.ToUpper(strings.TrimSpace(in.Currency)))
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Cart, error) {
	return s.repo.GetByID(ctx, id)
}

// ChangeLine applies the edit only; callers re-read the cart through
// the pre-totals pass so the returned snapshot never carries a stale
// quantity or line total.
func (s *Service) ChangeLine(ctx context.Context, cartID, lineID string, in ChangeLineInput) error {
	cart, err := s.repo.GetByID(ctx, cartID)
	if err != nil {
		return err
	}
	line := findLine(cart, lineID)
	if line == nil {
		return domain.ErrNotFound
	}

	switch {
	case in.Hours != nil:
		if !line.Hourly() {
			return errors.New("hours only apply to hourly line items")
		}
		if *in.Hours < 1 {
			return errors.New("hours must be at least 1")
		}
		return s.repo.UpdateLineHours(ctx, cartID, lineID, *in.Hours)
	case in.Quantity != nil:
		if line.Hourly() {
			// The quantity input is disabled for hourly lines on the cart
			// page; reject programmatic changes too.
			return domain.ErrQuantityLocked
		}
		if *in.Quantity < 1 {
			return errors.New("quantity must be positive")
		}
		return s.repo.ChangeLineQuantity(ctx, cartID, lineID, *in.Quantity)
	default:
		return errors.New("hours or quantity required")
	}
}

func findLine(cart *domain.Cart, lineID string) *domain.CartLine {
	for i := range cart.Lines {
		if cart.Lines[i].ID == lineID {
			return &cart.Lines[i]
		}
	}
	return nil
}
