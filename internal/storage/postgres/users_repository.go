package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cropcraft/server/internal/domain/users"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func (r *UserRepository) Create(ctx context.Context, user users.User) error {
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO users (id, username, password_hash, created_at)
VALUES ($1, $2, $3, $4)
`, user.ID, user.Username, user.PasswordHash, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	var user users.User
	err := r.pool.QueryRow(ctx, `
SELECT id, username, password_hash, created_at
  FROM users
 WHERE username = $1
`, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}
