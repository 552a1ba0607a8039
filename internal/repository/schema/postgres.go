package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"hourly-quote/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Load(ctx context.Context) (*domain.FieldSchema, error) {
	const q = `
SELECT version, fields
FROM quote_field_schema
WHERE id = 1
`
	var version int
	var raw []byte
	err := r.pool.QueryRow(ctx, q).Scan(&version, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Never saved: an empty schema at version zero.
			return &domain.FieldSchema{Version: 0, Fields: []domain.FieldDefinition{}}, nil
		}
		r.logger.Printf("schema repo: load error=%v", err)
		return nil, err
	}

	var fields []domain.FieldDefinition
	if err := json.Unmarshal(raw, &fields); err != nil {
		r.logger.Printf("schema repo: decode stored fields error=%v", err)
		return nil, fmt.Errorf("decode stored schema: %w", err)
	}
	if fields == nil {
		fields = []domain.FieldDefinition{}
	}
	return &domain.FieldSchema{Version: version, Fields: fields}, nil
}

func (r *postgresRepo) Save(ctx context.Context, fields []domain.FieldDefinition) (*domain.FieldSchema, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}

	const q = `
INSERT INTO quote_field_schema (id, version, fields, updated_at)
VALUES (1, 1, $1, now())
ON CONFLICT (id) DO UPDATE SET
    version = quote_field_schema.version + 1,
    fields = EXCLUDED.fields,
    updated_at = now()
RETURNING version
`
	var version int
	if err := r.pool.QueryRow(ctx, q, raw).Scan(&version); err != nil {
		r.logger.Printf("schema repo: save error=%v", err)
		return nil, fmt.Errorf("%w: save quote field schema: %v", domain.ErrPersistence, err)
	}
	r.logger.Printf("schema repo: saved version=%d fields=%d", version, len(fields))
	return &domain.FieldSchema{Version: version, Fields: fields}, nil
}
