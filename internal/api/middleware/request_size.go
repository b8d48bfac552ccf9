package middleware

import (
	"net/http"
)

const (
	// DefaultMaxBodySize covers every payload the API accepts.
	DefaultMaxBodySize int64 = 1 << 20 // 1MB

	// ContactMaxBodySize bounds anonymous contact submissions.
	ContactMaxBodySize int64 = 64 << 10 // 64KB
)

// RequestSize wraps the body in http.MaxBytesReader. Handlers see a
// *http.MaxBytesError from the decoder once maxBytes is exceeded.
func RequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PublicRequestSize applies DefaultMaxBodySize.
func PublicRequestSize() func(http.Handler) http.Handler {
	return RequestSize(DefaultMaxBodySize)
}
