package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cropcraft/server/internal/domain/services"
)

type ServiceRepository struct {
	db *sql.DB
}

func (r *ServiceRepository) List(ctx context.Context) ([]services.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
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

// CreateBatch inserts entries in one transaction.
func (r *ServiceRepository) CreateBatch(ctx context.Context, entries []services.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	now := toNanos(time.Now())
	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO services (id, title, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
`, entry.ID, entry.Title, entry.Description, now, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert service: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *ServiceRepository) Update(ctx context.Context, entry services.Entry) (*services.Entry, error) {
	result, err := r.db.ExecContext(ctx, `
UPDATE services
   SET title = ?, description = ?, updated_at = ?
 WHERE id = ?
`, entry.Title, entry.Description, toNanos(time.Now()), entry.ID)
	if err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	if affected == 0 {
		return nil, services.ErrNotFound
	}
	updated := entry
	return &updated, nil
}
