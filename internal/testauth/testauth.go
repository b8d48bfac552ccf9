// Package testauth mints admin bearer tokens for tests and local tooling.
// It must never be wired into the serving path.
package testauth

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/cropcraft/server/internal/auth"
)

// DevSecret is the well-known secret used when neither Config.JWTSecret nor
// DEV_JWT_SECRET is set.
const DevSecret = "dev-secret-do-not-use-in-production-0123456789"

// Authenticator signs tokens with the same JWTManager the server uses, so a
// token it mints passes the admin middleware when the secrets match.
type Authenticator struct {
	tokens   *auth.JWTManager
	username string
}

type Config struct {
	// JWTSecret defaults to DEV_JWT_SECRET, then DevSecret.
	JWTSecret string
	// Issuer defaults to "cropcraft".
	Issuer string
	// Username defaults to "admin".
	Username string
	// Expiry defaults to one hour.
	Expiry time.Duration
}

func New(cfg Config) *Authenticator {
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("DEV_JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DevSecret
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "cropcraft"
	}
	if cfg.Username == "" {
		cfg.Username = "admin"
	}
	if cfg.Expiry <= 0 {
		cfg.Expiry = time.Hour
	}
	return &Authenticator{
		tokens:   auth.NewJWTManager(cfg.JWTSecret, cfg.Expiry, cfg.Issuer),
		username: cfg.Username,
	}
}

func (a *Authenticator) Token() (string, error) {
	token, err := a.tokens.Generate(a.username)
	if err != nil {
		return "", fmt.Errorf("mint test token: %w", err)
	}
	return token, nil
}

// AddAuth sets the Authorization header on req.
func (a *Authenticator) AddAuth(req *http.Request) error {
	token, err := a.Token()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}
