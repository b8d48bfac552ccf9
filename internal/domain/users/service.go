package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cropcraft/server/internal/auth"
	"github.com/cropcraft/server/internal/domain/ids"
	"github.com/cropcraft/server/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Error types for user domain operations
var (
	ErrNotFound           = errors.New("user not found")
	ErrUsernameTaken      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var msgPasswordTooLong = fmt.Sprintf("Password must be at most %d bytes", auth.MaxPasswordBytes)

var credentialMessages = validation.Messages{
	"required": "Username and password are required",
}

// User is an admin account. Only the bcrypt hash of the password is kept.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Credentials is the register/login payload.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Repository is the credential store. Create must return ErrUsernameTaken
// when the username already exists; GetByUsername returns ErrNotFound.
type Repository interface {
	Create(ctx context.Context, user User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// TokenIssuer mints bearer tokens for authenticated users.
type TokenIssuer interface {
	Generate(username string) (string, error)
}

// Service handles registration and login.
type Service struct {
	repo      Repository
	tokens    TokenIssuer
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

func NewService(repo Repository, tokens TokenIssuer, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		tokens:    tokens,
		validator: validation.New(),
		logger:    logger.With().Str("component", "users").Logger(),
		now:       time.Now,
	}
}

// Register stores a new user and returns a token for it.
func (s *Service) Register(ctx context.Context, creds Credentials) (string, error) {
	if err := validation.Check(s.validator, creds, credentialMessages); err != nil {
		return "", err
	}

	if _, err := s.create(ctx, creds); err != nil {
		return "", err
	}

	token, err := s.tokens.Generate(creds.Username)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	s.logger.Info().Str("username", creds.Username).Msg("user registered")
	return token, nil
}

// Authenticate verifies credentials and returns a fresh token.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (string, error) {
	if err := validation.Check(s.validator, creds, credentialMessages); err != nil {
		return "", err
	}

	user, err := s.repo.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = auth.CheckPassword("", creds.Password)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, creds.Password); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// EnsureUser creates the user unless the username already exists. It
// reports whether a row was written.
func (s *Service) EnsureUser(ctx context.Context, creds Credentials) (bool, error) {
	if err := validation.Check(s.validator, creds, credentialMessages); err != nil {
		return false, err
	}
	if _, err := s.create(ctx, creds); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) create(ctx context.Context, creds Credentials) (User, error) {
	// Counted in bytes: bcrypt's limit is on the encoded password.
	if len(creds.Password) > auth.MaxPasswordBytes {
		return User{}, validation.Error{Field: "password", Message: msgPasswordTooLong}
	}

	_, err := s.repo.GetByUsername(ctx, creds.Username)
	if err == nil {
		return User{}, ErrUsernameTaken
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("check username: %w", err)
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           ids.New(),
		Username:     creds.Username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	// The store's unique constraint still catches a concurrent registration
	// that slipped past the lookup above.
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return User{}, ErrUsernameTaken
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
