package storage

import (
	"context"

	"github.com/cropcraft/server/internal/domain/contacts"
	"github.com/cropcraft/server/internal/domain/hero"
	"github.com/cropcraft/server/internal/domain/services"
	"github.com/cropcraft/server/internal/domain/users"
)

// Repository groups data access by domain.
type Repository interface {
	Users() users.Repository
	Hero() hero.Repository
	Services() services.Repository
	Contacts() contacts.Repository

	// Migrate installs or upgrades the schema. It is idempotent.
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close()
}
