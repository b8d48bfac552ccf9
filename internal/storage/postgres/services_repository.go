package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cropcraft/server/internal/domain/services"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func (r *ServiceRepository) List(ctx context.Context) ([]services.Entry, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT id, title, description
  FROM services
 ORDER BY created_at ASC, id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	entries := make([]services.Entry, 0)
	for rows.Next() {
		var entry services.Entry
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Description); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list services rows: %w", err)
	}
	return entries, nil
}

// CreateBatch inserts all entries in one transaction. The rows share a
// created_at so List falls back to the ULID order they were minted in.
func (r *ServiceRepository) CreateBatch(ctx context.Context, entries []services.Entry) error {
	if r.tx == nil {
		return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
			return (&ServiceRepository{pool: r.pool, tx: tx}).CreateBatch(ctx, entries)
		})
	}

	batch := &pgx.Batch{}
	for _, entry := range entries {
		batch.Queue(`
INSERT INTO services (id, title, description)
VALUES ($1, $2, $3)
`, entry.ID, entry.Title, entry.Description)
	}
	results := r.tx.SendBatch(ctx, batch)
	for range entries {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("insert service: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("insert services: %w", err)
	}
	return nil
}

func (r *ServiceRepository) Update(ctx context.Context, entry services.Entry) (*services.Entry, error) {
	var updated services.Entry
	err := r.queryer().QueryRow(ctx, `
UPDATE services
   SET title = $2, description = $3, updated_at = now()
 WHERE id = $1
RETURNING id, title, description
`, entry.ID, entry.Title, entry.Description).Scan(&updated.ID, &updated.Title, &updated.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrNotFound
		}
		return nil, fmt.Errorf("update service: %w", err)
	}
	return &updated, nil
}

func (r *ServiceRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}
