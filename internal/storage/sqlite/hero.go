package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cropcraft/server/internal/domain/hero"
)

type HeroRepository struct {
	db *sql.DB
}

func (r *HeroRepository) First(ctx context.Context) (*hero.Hero, error) {
	var h hero.Hero
	err := r.db.QueryRowContext(ctx, `
SELECT id, title, subtitle, image_url
  FROM heroes
 ORDER BY created_at ASC, id ASC
 LIMIT 1
`).Scan(&h.ID, &h.Title, &h.Subtitle, &h.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hero.ErrNotFound
		}
		return nil, fmt.Errorf("get hero: %w", err)
	}
	return &h, nil
}

func (r *HeroRepository) Create(ctx context.Context, h hero.Hero) error {
	now := toNanos(time.Now())
	_, err := r.db.ExecContext(ctx, `
INSERT INTO heroes (id, title, subtitle, image_url, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`, h.ID, h.Title, h.Subtitle, h.ImageURL, now, now)
	if err != nil {
		return fmt.Errorf("insert hero: %w", err)
	}
	return nil
}

func (r *HeroRepository) Update(ctx context.Context, h hero.Hero) (*hero.Hero, error) {
	result, err := r.db.ExecContext(ctx, `
UPDATE heroes
   SET title = ?, subtitle = ?, image_url = ?, updated_at = ?
 WHERE id = ?
`, h.Title, h.Subtitle, h.ImageURL, toNanos(time.Now()), h.ID)
	if err != nil {
		return nil, fmt.Errorf("update hero: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update hero: %w", err)
	}
	if affected == 0 {
		return nil, hero.ErrNotFound
	}
	updated := h
	return &updated, nil
}
