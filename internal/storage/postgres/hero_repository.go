package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cropcraft/server/internal/domain/hero"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HeroRepository struct {
	pool *pgxpool.Pool
}

func (r *HeroRepository) First(ctx context.Context) (*hero.Hero, error) {
	var h hero.Hero
	err := r.pool.QueryRow(ctx, `
SELECT id, title, subtitle, image_url
  FROM heroes
 ORDER BY created_at ASC, id ASC
 LIMIT 1
`).Scan(&h.ID, &h.Title, &h.Subtitle, &h.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, hero.ErrNotFound
		}
		return nil, fmt.Errorf("get hero: %w", err)
	}
	return &h, nil
}

func (r *HeroRepository) Create(ctx context.Context, h hero.Hero) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO heroes (id, title, subtitle, image_url)
VALUES ($1, $2, $3, $4)
`, h.ID, h.Title, h.Subtitle, h.ImageURL)
	if err != nil {
		return fmt.Errorf("insert hero: %w", err)
	}
	return nil
}

func (r *HeroRepository) Update(ctx context.Context, h hero.Hero) (*hero.Hero, error) {
	var updated hero.Hero
	err := r.pool.QueryRow(ctx, `
UPDATE heroes
   SET title = $2, subtitle = $3, image_url = $4, updated_at = now()
 WHERE id = $1
RETURNING id, title, subtitle, image_url
`, h.ID, h.Title, h.Subtitle, h.ImageURL).Scan(&updated.ID, &updated.Title, &updated.Subtitle, &updated.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, hero.ErrNotFound
		}
		return nil, fmt.Errorf("update hero: %w", err)
	}
	return &updated, nil
}
