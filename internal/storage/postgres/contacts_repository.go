package postgres

import (
	"context"
	"fmt"

	"github.com/cropcraft/server/internal/domain/contacts"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func (r *ContactRepository) Create(ctx context.Context, contact contacts.Contact) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO contacts (id, name, email, message, created_at)
VALUES ($1, $2, $3, $4, $5)
`, contact.ID, contact.Name, contact.Email, contact.Message, contact.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *ContactRepository) List(ctx context.Context) ([]contacts.Contact, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, name, email, message, created_at
  FROM contacts
 ORDER BY created_at DESC, id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	items := make([]contacts.Contact, 0)
	for rows.Next() {
		var c contacts.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts rows: %w", err)
	}
	return items, nil
}
