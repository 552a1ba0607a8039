package cart

import (
	"context"
	"errors"
	"testing"

	"hourly-quote/internal/domain"
	"github.com/shopspring/decimal"
)

type stubRepo struct {
	cart           *domain.Cart
	getErr         error
	created        *domain.Cart
	createErr      error
	lastCurrency   string
	hoursCalls     int
	lastHours      int
	quantityCalls  int
	lastQuantity   int
	updateHoursErr error
}

func (s *stubRepo) Create(_ context.Context, currency string) (*domain.Cart, error) {
	s.lastCurrency = currency
	return s.created, s.createErr
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Cart, error) {
	return s.cart, s.getErr
}

func (s *stubRepo) AppendLine(_ context.Context, _ string, line domain.CartLine) (*domain.CartLine, error) {
	return &line, nil
}

func (s *stubRepo) UpdateLinePricing(_ context.Context, _, _ string, _ decimal.Decimal, _ int) error {
	return nil
}

func (s *stubRepo) UpdateLineHours(_ context.Context, _, _ string, hours int) error {
	s.hoursCalls++
	s.lastHours = hours
	return s.updateHoursErr
}

func (s *stubRepo) ChangeLineQuantity(_ context.Context, _, _ string, quantity int) error {
	s.quantityCalls++
	s.lastQuantity = quantity
	return nil
}

func intPtr(v int) *int {
	return &v
}

func cartWith(lines ...domain.CartLine) *domain.Cart {
	return &domain.Cart{ID: "cart-1", Currency: "USD", State: "active", Lines: lines}
}

func TestCreateValidation(t *testing.T) {
	svc := New(&stubRepo{})
	if _, err := svc.Create(context.Background(), CreateInput{Currency: "   "}); err == nil {
		t.Fatal("expected currency validation error")
	}
}

func TestCreateNormalizesCurrency(t *testing.T) {
	repo := &stubRepo{created: cartWith()}
	svc := New(repo)
	if _, err := svc.Create(context.Background(), CreateInput{Currency: " usd "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastCurrency != "USD" {
		t.Fatalf("expected USD, got %q", repo.lastCurrency)
	}
}

func TestChangeLineHoursOnHourlyLine(t *testing.T) {
	repo := &stubRepo{cart: cartWith(domain.CartLine{ID: "line-1", Hours: 3, Quantity: 3})}
	svc := New(repo)
	if err := svc.ChangeLine(context.Background(), "cart-1", "line-1", ChangeLineInput{Hours: intPtr(5)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.hoursCalls != 1 || repo.lastHours != 5 {
		t.Fatalf("expected hours update to 5, got calls=%d hours=%d", repo.hoursCalls, repo.lastHours)
	}
}

func TestChangeLineQuantityLockedOnHourlyLine(t *testing.T) {
	repo := &stubRepo{cart: cartWith(domain.CartLine{ID: "line-1", Hours: 3, Quantity: 3})}
	svc := New(repo)
	err := svc.ChangeLine(context.Background(), "cart-1", "line-1", ChangeLineInput{Quantity: intPtr(7)})
	if !errors.Is(err, domain.ErrQuantityLocked) {
		t.Fatalf("expected ErrQuantityLocked, got %v", err)
	}
	if repo.quantityCalls != 0 {
		t.Fatal("quantity must not be written for hourly lines")
	}
}

func TestChangeLineHoursRejectedOnRegularLine(t *testing.T) {
	repo := &stubRepo{cart: cartWith(domain.CartLine{ID: "line-1", Quantity: 1})}
	svc := New(repo)
	if err := svc.ChangeLine(context.Background(), "cart-1", "line-1", ChangeLineInput{Hours: intPtr(2)}); err == nil {
		t.Fatal("expected error for hours on a regular line")
	}
}

func TestChangeLineQuantityOnRegularLine(t *testing.T) {
	repo := &stubRepo{cart: cartWith(domain.CartLine{ID: "line-1", Quantity: 1})}
	svc := New(repo)
	if err := svc.ChangeLine(context.Background(), "cart-1", "line-1", ChangeLineInput{Quantity: intPtr(4)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.quantityCalls != 1 || repo.lastQuantity != 4 {
		t.Fatalf("expected quantity update to 4, got calls=%d quantity=%d", repo.quantityCalls, repo.lastQuantity)
	}
}

func TestChangeLineUnknownLine(t *testing.T) {
	repo := &stubRepo{cart: cartWith()}
	svc := New(repo)
	err := svc.ChangeLine(context.Background(), "cart-1", "missing", ChangeLineInput{Hours: intPtr(2)})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
