package storage

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neexbeast/dokoiko/internal/destination"
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository stores catalog records as JSONB documents.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// ListRecords returns all records in catalog order.
func (r *Repository) ListRecords(ctx context.Context) ([]destination.Record, error) {
	const q = `
		SELECT id, data
		FROM destinations
		ORDER BY position, id
	`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying destinations: %w", err)
	}
	defer rows.Close()

	var records []destination.Record
	for rows.Next() {
		var id string
		var dataJSON []byte
		if err := rows.Scan(&id, &dataJSON); err != nil {
			return nil, fmt.Errorf("scanning destination row: %w", err)
		}

		var rec destination.Record
		if err := json.Unmarshal(dataJSON, &rec); err != nil {
			return nil, fmt.Errorf("unmarshaling destination %s: %w", id, err)
		}
		rec.ID = id
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating destination rows: %w", err)
	}

	return records, nil
}

// LoadCatalog reads all records and builds a validated catalog.
func (r *Repository) LoadCatalog(ctx context.Context) (*destination.Catalog, error) {
	records, err := r.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	c, err := destination.NewCatalog(records)
	if err != nil {
		return nil, fmt.Errorf("building catalog from database: %w", err)
	}
	return c, nil
}

// ReplaceCatalog makes the table hold exactly the records of catalog, in
// catalog order, within one transaction. It returns how many stored records
// were removed because the catalog no longer lists them.
func (r *Repository) ReplaceCatalog(ctx context.Context, catalog *destination.Catalog) (removed int64, err error) {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning catalog import: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	ids := make([]string, 0, catalog.Len())
	for i, rec := range catalog.Records() {
		if err := upsertRecord(ctx, tx, i, rec); err != nil {
			return 0, err
		}
		ids = append(ids, rec.ID)
	}

	const q = `DELETE FROM destinations WHERE NOT (id = ANY($1))`
	tag, err := tx.Exec(ctx, q, ids)
	if err != nil {
		return 0, fmt.Errorf("removing stale destinations: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing catalog import: %w", err)
	}
	return tag.RowsAffected(), nil
}

func upsertRecord(ctx context.Context, db execer, position int, rec destination.Record) error {
	dataJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling destination %s: %w", rec.ID, err)
	}

	const q = `
		INSERT INTO destinations (id, position, data, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET position   = EXCLUDED.position,
		    data       = EXCLUDED.data,
		    updated_at = EXCLUDED.updated_at
	`

	if _, err := db.Exec(ctx, q, rec.ID, position, dataJSON); err != nil {
		return fmt.Errorf("upserting destination %s: %w", rec.ID, err)
	}

	return nil
}

// CountByDeparture returns how many records list departure. It uses the
// JSONB @> containment operator backed by the departures GIN index.
func (r *Repository) CountByDeparture(ctx context.Context, departure string) (int, error) {
	filter, err := json.Marshal([]string{departure})
	if err != nil {
		return 0, fmt.Errorf("marshaling JSONB filter: %w", err)
	}

	const q = `
		SELECT COUNT(*)
		FROM destinations
		WHERE data -> 'departures' @> $1::jsonb
	`

	var n int
	if err := r.q.QueryRow(ctx, q, string(filter)).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting destinations for %s: %w", departure, err)
	}
	return n, nil
}
