package pricing

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"hourly-quote/internal/domain"
	"github.com/shopspring/decimal"
)

// memCartStore applies pricing updates to an in-memory cart the way the
// real store does, including the derived line and cart totals.
type memCartStore struct {
	cart    domain.Cart
	updates int
}

func (s *memCartStore) GetByID(_ context.Context, id string) (*domain.Cart, error) {
	if id != s.cart.ID {
		return nil, domain.ErrNotFound
	}
	out := s.cart
	out.Lines = append([]domain.CartLine(nil), s.cart.Lines...)
	return &out, nil
}

func (s *memCartStore) UpdateLinePricing(_ context.Context, cartID, lineID string, price decimal.Decimal, quantity int) error {
	s.updates++
	total := decimal.Zero
	for i := range s.cart.Lines {
		if s.cart.Lines[i].ID == lineID {
			s.cart.Lines[i].Price = price
			s.cart.Lines[i].Quantity = quantity
			s.cart.Lines[i].Total = price.Mul(decimal.NewFromInt(int64(quantity)))
		}
		total = total.Add(s.cart.Lines[i].Total)
	}
	s.cart.Total = total
	return nil
}

type metaCatalog struct {
	metas map[string]*domain.BillingMeta
}

func (c *metaCatalog) GetBillingMeta(_ context.Context, id string) (*domain.BillingMeta, error) {
	meta, ok := c.metas[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return meta, nil
}

func d(v string) decimal.Decimal {
	out, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return out
}

func hourlyCart() *memCartStore {
	added := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	return &memCartStore{cart: domain.Cart{
		ID:       "cart-1",
		Currency: "USD",
		State:    "active",
		Total:    d("120.00"),
		Lines: []domain.CartLine{
			{
				ID:        "line-1",
				CartID:    "cart-1",
				ProductID: "p1",
				Hours:     3,
				Quantity:  3,
				Price:     d("40.00"),
				Total:     d("120.00"),
				CreatedAt: added,
			},
		},
	}}
}

func TestReconcilePicksUpRateChange(t *testing.T) {
	carts := hourlyCart()
	catalog := &metaCatalog{metas: map[string]*domain.BillingMeta{
		"p1": {ProductID: "p1", IsHourly: true, HourlyRate: d("50.00")},
	}}
	r := NewReconciler(carts, catalog, nil)

	cart, err := r.Reconcile(context.Background(), "cart-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line := cart.Lines[0]
	if line.Quantity != 3 {
		t.Fatalf("expected quantity pinned to hours, got %d", line.Quantity)
	}
	if !line.Price.Equal(d("50.00")) {
		t.Fatalf("expected per-unit price 50.00, got %s", line.Price)
	}
	if !line.Total.Equal(d("150.00")) {
		t.Fatalf("expected line total 150.00, got %s", line.Total)
	}
	if !cart.Total.Equal(d("150.00")) {
		t.Fatalf("expected cart total 150.00, got %s", cart.Total)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	carts := hourlyCart()
	catalog := &metaCatalog{metas: map[string]*domain.BillingMeta{
		"p1": {ProductID: "p1", IsHourly: true, HourlyRate: d("50.00")},
	}}
	r := NewReconciler(carts, catalog, nil)

	first, err := r.Reconcile(context.Background(), "cart-1")
	if err != nil {
		t.Fatalf("unexpected error on first pass: %v", err)
	}
	writes := carts.updates

	second, err := r.Reconcile(context.Background(), "cart-1")
	if err != nil {
		t.Fatalf("unexpected error on second pass: %v", err)
	}
	if carts.updates != writes {
		t.Fatalf("second pass wrote %d more updates", carts.updates-writes)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("snapshots differ across passes:\nfirst:  %#v\nsecond: %#v", first, second)
	}
}

func TestReconcileNeverMultipliesHoursIntoPrice(t *testing.T) {
	carts := hourlyCart()
	catalog := &metaCatalog{metas: map[string]*domain.BillingMeta{
		"p1": {ProductID: "p1", IsHourly: true, HourlyRate: d("50.00")},
	}}
	r := NewReconciler(carts, catalog, nil)

	for i := 0; i < 3; i++ {
		cart, err := r.Reconcile(context.Background(), "cart-1")
		if err != nil {
			t.Fatalf("pass %d: unexpected error: %v", i, err)
		}
		if !cart.Lines[0].Price.Equal(d("50.00")) {
			t.Fatalf("pass %d: price drifted to %s", i, cart.Lines[0].Price)
		}
	}
}

func TestReconcileInvalidConfigKeepsLastValidValues(t *testing.T) {
	carts := hourlyCart()
	catalog := &metaCatalog{metas: map[string]*domain.BillingMeta{
		"p1": {ProductID: "p1", IsHourly: true, HourlyRate: decimal.Zero},
	}}
	r := NewReconciler(carts, catalog, nil)

	cart, err := r.Reconcile(context.Background(), "cart-1")
	var cfgErr *domain.InvalidHourlyConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected InvalidHourlyConfigError, got %v", err)
	}
	if len(cfgErr.ProductIDs) != 1 || cfgErr.ProductIDs[0] != "p1" {
		t.Fatalf("expected p1 reported, got %v", cfgErr.ProductIDs)
	}
	if carts.updates != 0 {
		t.Fatal("line must keep its last valid price and quantity")
	}
	if !cart.Lines[0].Price.Equal(d("40.00")) || cart.Lines[0].Quantity != 3 {
		t.Fatalf("expected untouched line, got price=%s quantity=%d", cart.Lines[0].Price, cart.Lines[0].Quantity)
	}
}

func TestReconcileMissingProductReported(t *testing.T) {
	carts := hourlyCart()
	r := NewReconciler(carts, &metaCatalog{metas: map[string]*domain.BillingMeta{}}, nil)

	_, err := r.Reconcile(context.Background(), "cart-1")
	var cfgErr *domain.InvalidHourlyConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected InvalidHourlyConfigError, got %v", err)
	}
}

func TestReconcileSkipsRegularLines(t *testing.T) {
	carts := &memCartStore{cart: domain.Cart{
		ID:    "cart-1",
		Total: d("12.99"),
		Lines: []domain.CartLine{
			{ID: "line-1", CartID: "cart-1", ProductID: "p2", Quantity: 1, Price: d("12.99"), Total: d("12.99")},
		},
	}}
	r := NewReconciler(carts, &metaCatalog{metas: map[string]*domain.BillingMeta{}}, nil)

	cart, err := r.Reconcile(context.Background(), "cart-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if carts.updates != 0 {
		t.Fatal("regular lines must not be touched")
	}
	if !cart.Total.Equal(d("12.99")) {
		t.Fatalf("expected total unchanged, got %s", cart.Total)
	}
}
