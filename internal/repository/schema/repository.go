package schema

import (
	"context"

	"hourly-quote/internal/domain"
)

// Repository is the Field Schema Store: one shared slot holding the
// current quote-form schema. Save replaces the field list wholesale;
// there is no field-level diffing.
type Repository interface {
	Load(ctx context.Context) (*domain.FieldSchema, error)
	Save(ctx context.Context, fields []domain.FieldDefinition) (*domain.FieldSchema, error)
}
