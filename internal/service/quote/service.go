package quote

import (
	"context"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"hourly-quote/internal/domain"
	schemasvc "hourly-quote/internal/service/schema"
)

// Service turns a raw quote submission into a cart line. On any
// validation failure nothing is written; the only side effect of a
// successful pass is the single cart append.
type Service struct {
	catalog catalogStore
	carts   cartStore
	schemas schemaStore
	logger  *log.Logger
}

type catalogStore interface {
	Exists(ctx context.Context, id string) (bool, error)
	GetBillingMeta(ctx context.Context, id string) (*domain.BillingMeta, error)
}

type cartStore interface {
	AppendLine(ctx context.Context, cartID string, line domain.CartLine) (*domain.CartLine, error)
}

type schemaStore interface {
	Load(ctx context.Context) (*domain.FieldSchema, error)
}

func New(catalog catalogStore, carts cartStore, schemas schemaStore, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{catalog: catalog, carts: carts, schemas: schemas, logger: logger}
}

// Process validates sub against the current field schema and appends
// the resulting line to the cart. Error taxonomy: domain.ErrNotFound
// (unknown product), *domain.ValidationError (one or more bad fields),
// domain.ErrNotHourlyBillable (product not hourly or rate not positive)
// and *domain.CartRejectedError (store declined the append, surfaced
// verbatim, never retried).
func (s *Service) Process(ctx context.Context, cartID string, sub domain.QuoteSubmission) (*domain.CartLine, error) {
	productID := strings.TrimSpace(sub.ProductID)
	if productID == "" {
		return nil, domain.ErrNotFound
	}
	exists, err := s.catalog.Exists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	hours := parseHours(sub.Hours)

	fieldSchema, err := s.schemas.Load(ctx)
	if err != nil {
		return nil, err
	}
	customFields, verr := schemasvc.Normalize(fieldSchema, sub.FieldValues, sub.Attachments)
	if verr != nil {
		return nil, verr
	}

	meta, err := s.catalog.GetBillingMeta(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !meta.HourlyConfigured() {
		return nil, domain.ErrNotHourlyBillable
	}

	// An admin-configured field named customNote owns that key; the
	// free-form note must never overwrite its validated value.
	if note := strings.TrimSpace(sub.CustomNote); note != "" && !fieldSchema.HasField("customNote") {
		customFields["customNote"] = note
	}

	line := domain.CartLine{
		ProductID:    productID,
		Hours:        hours,
		Quantity:     hours,
		Price:        meta.HourlyRate,
		CustomFields: customFields,
	}
	added, err := s.carts.AppendLine(ctx, cartID, line)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, &domain.CartRejectedError{Cause: err}
	}
	s.logger.Printf("quote: added line cart=%s product=%s hours=%d rate=%s", cartID, productID, hours, meta.HourlyRate.StringFixed(2))
	return added, nil
}

// parseHours applies the legacy leniency: absent or non-numeric hours
// become a single hour, and anything below one is raised to one.
func parseHours(raw string) int {
	h, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || h < 1 {
		return 1
	}
	return h
}
