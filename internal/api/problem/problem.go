package problem

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

const contentType = "application/problem+json"

// Problem type URIs.
const (
	TypeValidation   = "https://cropcraft.dev/problems/validation-error"
	TypeUnauthorized = "https://cropcraft.dev/problems/unauthorized"
	TypeNotFound     = "https://cropcraft.dev/problems/not-found"
	TypeServerError  = "https://cropcraft.dev/problems/server-error"
	TypeTooLarge     = "https://cropcraft.dev/problems/payload-too-large"
)

// ServerErrorMessage is the only text 5xx responses show the client.
const ServerErrorMessage = "Server error"

// ProblemDetails is an RFC 7807 body. Message duplicates the human-readable
// text under the key the site client reads.
type ProblemDetails struct {
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Status   int            `json:"status"`
	Detail   string         `json:"detail,omitempty"`
	Instance string         `json:"instance,omitempty"`
	Message  string         `json:"message"`
	Errors   map[string]any `json:"errors,omitempty"`
}

type Option func(*ProblemDetails)

func WithDetail(detail string) Option {
	return func(p *ProblemDetails) {
		p.Detail = detail
	}
}

// WithMessage sets the client-facing message. It is ignored for 5xx.
func WithMessage(message string) Option {
	return func(p *ProblemDetails) {
		p.Message = message
	}
}

func WithErrors(errs map[string]any) Option {
	return func(p *ProblemDetails) {
		p.Errors = errs
	}
}

// Write sends a problem response and logs err through the request logger:
// 4xx at warn, 5xx at error. Outside development and test the detail of an
// error is replaced with the status text.
func Write(w http.ResponseWriter, r *http.Request, status int, typ, title string, err error, env string, opts ...Option) {
	problem := ProblemDetails{
		Type:   typ,
		Title:  title,
		Status: status,
	}

	for _, opt := range opts {
		opt(&problem)
	}

	if problem.Detail == "" && err != nil {
		if env == "development" || env == "test" {
			problem.Detail = err.Error()
		} else {
			problem.Detail = http.StatusText(status)
		}
	}

	switch {
	case status >= 500:
		problem.Message = ServerErrorMessage
	case problem.Message == "":
		problem.Message = title
	}

	if r != nil {
		if problem.Instance == "" {
			problem.Instance = r.URL.Path
		}
		logProblem(r, status, typ, title, err)
	}

	WriteProblem(w, problem)
}

func logProblem(r *http.Request, status int, typ, title string, err error) {
	if err == nil || status < 400 {
		return
	}
	logger := zerolog.Ctx(r.Context())
	event := logger.Warn()
	if status >= 500 {
		event = logger.Error()
	}
	event.
		Err(err).
		Int("status", status).
		Str("type", typ).
		Str("path", r.URL.Path).
		Str("method", r.Method).
		Msg(title)
}

func WriteProblem(w http.ResponseWriter, problem ProblemDetails) {
	payload, err := json.Marshal(problem)
	if err != nil {
		fallback := fmt.Sprintf(`{"type":"about:blank","title":%q,"status":500,"message":%q}`,
			http.StatusText(http.StatusInternalServerError), ServerErrorMessage)
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(fallback))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(problem.Status)
	_, _ = w.Write(payload)
}
