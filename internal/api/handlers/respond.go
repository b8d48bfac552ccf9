package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cropcraft/server/internal/api/problem"
	"github.com/cropcraft/server/internal/domain/hero"
	"github.com/cropcraft/server/internal/domain/services"
	"github.com/cropcraft/server/internal/domain/users"
	"github.com/cropcraft/server/internal/validation"
)

// Client-facing messages.
const (
	msgInvalidBody        = "Invalid request body"
	msgTooLarge           = "Request body too large"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgHeroNotFound       = "Hero not found"
	msgServiceNotFound    = "Service not found"
)

var (
	errEmptyBody    = errors.New("request body is empty")
	errTrailingData = errors.New("unexpected data after JSON body")
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pathParam(r *http.Request, key string) string {
	if r == nil {
		return ""
	}
	return r.PathValue(key)
}

// decodeJSON reads one JSON document from the body into dst. On failure it
// writes the problem response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, env string) bool {
	if r.Body == nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", errEmptyBody, env,
			problem.WithMessage(msgInvalidBody))
		return false
	}

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err == nil {
		err = expectEOF(dec)
	}
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		problem.Write(w, r, http.StatusRequestEntityTooLarge, problem.TypeTooLarge, "Payload too large", err, env,
			problem.WithMessage(msgTooLarge))
	case errors.Is(err, io.EOF):
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", errEmptyBody, env,
			problem.WithMessage(msgInvalidBody))
	default:
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, env,
			problem.WithMessage(msgInvalidBody))
	}
	return false
}

// expectEOF rejects anything but whitespace after the first JSON value.
func expectEOF(dec *json.Decoder) error {
	_, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return err
	}
	return errTrailingData
}

// writeServiceError maps domain errors onto the failure contract: 400 for
// input problems, 401 for bad credentials, 404 for unknown ids, 500 for
// everything else.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, env string) {
	var vErr validation.Error
	switch {
	case errors.As(err, &vErr):
		opts := []problem.Option{problem.WithMessage(vErr.Message)}
		if vErr.Field != "" {
			opts = append(opts, problem.WithErrors(map[string]any{vErr.Field: vErr.Message}))
		}
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, env, opts...)
	case errors.Is(err, users.ErrUsernameTaken):
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, env,
			problem.WithMessage(msgUserExists))
	case errors.Is(err, users.ErrInvalidCredentials):
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, env,
			problem.WithMessage(msgInvalidCredentials))
	case errors.Is(err, hero.ErrNotFound):
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, env,
			problem.WithMessage(msgHeroNotFound))
	case errors.Is(err, services.ErrNotFound):
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, env,
			problem.WithMessage(msgServiceNotFound))
	default:
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, env)
	}
}
