package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/cropcraft/server/internal/config"
	"github.com/cropcraft/server/internal/storage/postgres"
	"github.com/cropcraft/server/internal/storage/sqlite"
	"github.com/rs/zerolog"
)

// Backend names reported by Scheme.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Scheme maps a DATABASE_URL to the backend that serves it.
func Scheme(databaseURL string) (string, error) {
	scheme, _, ok := strings.Cut(databaseURL, "://")
	if !ok {
		return "", fmt.Errorf("database url has no scheme")
	}
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return BackendPostgres, nil
	case "sqlite", "sqlite3":
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database url scheme %q", scheme)
	}
}

// Open connects to the store named by cfg.URL. The schema is not touched;
// call Migrate before serving traffic.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (Repository, error) {
	backend, err := Scheme(cfg.URL)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendPostgres:
		repo, err := postgres.Open(ctx, cfg.URL, cfg.MaxConnections)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("backend", backend).Int("max_connections", cfg.MaxConnections).Msg("database connected")
		return repo, nil
	default:
		repo, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("backend", backend).Str("path", repo.Path()).Msg("database opened")
		return repo, nil
	}
}
