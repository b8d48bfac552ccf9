package problem

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, res *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var body ProblemDetails
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

func TestWrite_DevIncludesDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/hero/services", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusBadRequest, TypeValidation, "Invalid request", errors.New("boom"), "development")

	require.Equal(t, "application/problem+json", res.Header().Get("Content-Type"))
	body := decode(t, res)
	require.Equal(t, "boom", body.Detail)
	require.Equal(t, "/hero/services", body.Instance)
	require.Equal(t, "Invalid request", body.Message, "message falls back to the title")
}

func TestWrite_ProdSanitizesDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/hero", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusBadRequest, TypeValidation, "Invalid request", errors.New("boom"), "production",
		WithMessage("Exactly 3 services required"))

	body := decode(t, res)
	require.Equal(t, http.StatusText(http.StatusBadRequest), body.Detail)
	require.Equal(t, "Exactly 3 services required", body.Message)
}

func TestWrite_ServerErrorHidesMessage(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://example.com/hero/contact", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusInternalServerError, TypeServerError, "Server error", errors.New("db down"), "production",
		WithMessage("db down"))

	require.Equal(t, http.StatusInternalServerError, res.Code)
	body := decode(t, res)
	require.Equal(t, ServerErrorMessage, body.Message)
	require.NotContains(t, body.Detail, "db down")
}

func TestWrite_LogsByStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	req := httptest.NewRequest(http.MethodGet, "/hero", nil)
	req = req.WithContext(logger.WithContext(req.Context()))

	Write(httptest.NewRecorder(), req, http.StatusNotFound, TypeNotFound, "Hero not found", errors.New("hero not found"), "test")
	require.Contains(t, buf.String(), `"level":"warn"`)

	buf.Reset()
	Write(httptest.NewRecorder(), req, http.StatusInternalServerError, TypeServerError, "Server error", errors.New("boom"), "test")
	require.Contains(t, buf.String(), `"level":"error"`)
	require.Contains(t, buf.String(), `"status":500`)
}

func TestWriteProblem_UsesStatus(t *testing.T) {
	res := httptest.NewRecorder()
	WriteProblem(res, ProblemDetails{Type: TypeUnauthorized, Title: "Unauthorized", Status: http.StatusUnauthorized, Message: "Invalid token"})

	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.Equal(t, "Invalid token", decode(t, res).Message)
}
