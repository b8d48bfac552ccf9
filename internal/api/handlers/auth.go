package handlers

import (
	"errors"
	"net/http"

	"github.com/cropcraft/server/internal/domain/users"
	"github.com/cropcraft/server/internal/metrics"
	"github.com/cropcraft/server/internal/validation"
)

type AuthHandler struct {
	Service *users.Service
	Env     string
}

func NewAuthHandler(service *users.Service, env string) *AuthHandler {
	return &AuthHandler{Service: service, Env: env}
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates an admin account and returns a token for it.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var creds users.Credentials
	if !decodeJSON(w, r, &creds, h.Env) {
		metrics.AuthAttempts.WithLabelValues("register", "invalid").Inc()
		return
	}

	token, err := h.Service.Register(r.Context(), creds)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("register", authOutcome(err)).Inc()
		writeServiceError(w, r, err, h.Env)
		return
	}

	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// Login exchanges a username and password for a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds users.Credentials
	if !decodeJSON(w, r, &creds, h.Env) {
		metrics.AuthAttempts.WithLabelValues("login", "invalid").Inc()
		return
	}

	token, err := h.Service.Authenticate(r.Context(), creds)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("login", authOutcome(err)).Inc()
		writeServiceError(w, r, err, h.Env)
		return
	}

	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func authOutcome(err error) string {
	var vErr validation.Error
	switch {
	case errors.As(err, &vErr), errors.Is(err, users.ErrInvalidCredentials):
		return "invalid"
	case errors.Is(err, users.ErrUsernameTaken):
		return "conflict"
	default:
		return "error"
	}
}
