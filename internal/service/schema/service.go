package schema

import (
	"context"
	"strings"

	"hourly-quote/internal/domain"
)

// Service owns the quote-form field schema: the single shared slot the
// admin replaces wholesale on every save.
type Service struct {
	repo schemaRepo
}

type schemaRepo interface {
	Load(ctx context.Context) (*domain.FieldSchema, error)
	Save(ctx context.Context, fields []domain.FieldDefinition) (*domain.FieldSchema, error)
}

func New(repo schemaRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Load(ctx context.Context) (*domain.FieldSchema, error) {
	return s.repo.Load(ctx)
}

// Save validates the bare minimum an admin save must get right (names
// present and unique, known types) and replaces the stored schema. A
// required choice field with no options is accepted here on purpose:
// rejecting it at save time would break legacy schemas, so the
// submission validator refuses it instead.
func (s *Service) Save(ctx context.Context, fields []domain.FieldDefinition) (*domain.FieldSchema, error) {
	verr := &domain.ValidationError{}
	seen := make(map[string]bool, len(fields))
	normalized := make([]domain.FieldDefinition, 0, len(fields))
	for _, f := range fields {
		f.Name = strings.TrimSpace(f.Name)
		if f.Name == "" {
			verr.Add("name", "field name is required")
			continue
		}
		if !f.Type.Known() {
			verr.Add(f.Name, "unknown field type "+string(f.Type))
			continue
		}
		if seen[f.Name] {
			verr.Add(f.Name, "duplicate field name")
			continue
		}
		seen[f.Name] = true
		if !f.Type.HasOptions() {
			f.Options = ""
		}
		normalized = append(normalized, f)
	}
	if verr.Any() {
		return nil, verr
	}
	return s.repo.Save(ctx, normalized)
}
