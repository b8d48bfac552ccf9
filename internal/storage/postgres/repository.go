package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cropcraft/server/internal/domain/contacts"
	"github.com/cropcraft/server/internal/domain/hero"
	"github.com/cropcraft/server/internal/domain/services"
	"github.com/cropcraft/server/internal/domain/users"
	"github.com/cropcraft/server/internal/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements storage.Repository with a PostgreSQL backend
type Repository struct {
	pool        *pgxpool.Pool
	databaseURL string

	users    *UserRepository
	hero     *HeroRepository
	services *ServiceRepository
	contacts *ContactRepository
}

// Open creates a pool for databaseURL and verifies connectivity.
func Open(ctx context.Context, databaseURL string, maxConns int) (*Repository, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	repo, err := NewRepository(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	repo.databaseURL = databaseURL
	return repo, nil
}

// NewRepository wraps an existing pool.
func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool cannot be nil")
	}

	return &Repository{
		pool:     pool,
		users:    &UserRepository{pool: pool},
		hero:     &HeroRepository{pool: pool},
		services: &ServiceRepository{pool: pool},
		contacts: &ContactRepository{pool: pool},
	}, nil
}

func (r *Repository) Users() users.Repository {
	return r.users
}

func (r *Repository) Hero() hero.Repository {
	return r.hero
}

func (r *Repository) Services() services.Repository {
	return r.services
}

func (r *Repository) Contacts() contacts.Repository {
	return r.contacts
}

// Migrate applies the embedded schema using the URL the pool was opened with.
func (r *Repository) Migrate(ctx context.Context) error {
	if r.databaseURL == "" {
		return fmt.Errorf("migrate: repository was not opened from a database url")
	}
	return MigrateUp(ctx, r.databaseURL)
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repository) Close() {
	r.pool.Close()
}

func (r *Repository) PoolStats() metrics.PoolStats {
	stat := r.pool.Stat()
	return metrics.PoolStats{
		Open:    int(stat.TotalConns()),
		InUse:   int(stat.AcquiredConns()),
		Idle:    int(stat.IdleConns()),
		MaxOpen: int(stat.MaxConns()),
	}
}

type queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
