package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cropcraft/server/internal/domain/contacts"
)

type ContactRepository struct {
	db *sql.DB
}

func (r *ContactRepository) Create(ctx context.Context, contact contacts.Contact) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO contacts (id, name, email, message, created_at)
VALUES (?, ?, ?, ?, ?)
`, contact.ID, contact.Name, contact.Email, contact.Message, toNanos(contact.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *ContactRepository) List(ctx context.Context) ([]contacts.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `
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
		var (
			c         contacts.Contact
			createdAt int64
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.CreatedAt = fromNanos(createdAt)
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts rows: %w", err)
	}
	return items, nil
}
