package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		limit       int64
		wantOK      bool
		wantStatus  int
		wantMessage string
	}{
		{name: "single object", body: `{"title":"a"}`, wantOK: true},
		{name: "trailing whitespace", body: "{\"title\":\"a\"}\n  \t", wantOK: true},
		{name: "trailing garbage", body: `{"title":"a"}garbage`, wantStatus: http.StatusBadRequest, wantMessage: msgInvalidBody},
		{name: "second object", body: `{"title":"a"}{"title":"b"}`, wantStatus: http.StatusBadRequest, wantMessage: msgInvalidBody},
		{name: "stray closing brace", body: `{"title":"a"}}`, wantStatus: http.StatusBadRequest, wantMessage: msgInvalidBody},
		{name: "empty body", body: ``, wantStatus: http.StatusBadRequest, wantMessage: msgInvalidBody},
		{name: "malformed", body: `{"title":`, wantStatus: http.StatusBadRequest, wantMessage: msgInvalidBody},
		{name: "over limit", body: `{"title":"` + strings.Repeat("a", 64) + `"}`, limit: 16, wantStatus: http.StatusRequestEntityTooLarge, wantMessage: msgTooLarge},
		{name: "padding past limit", body: `{"title":"a"}` + strings.Repeat(" ", 64), limit: 24, wantStatus: http.StatusRequestEntityTooLarge, wantMessage: msgTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := httptest.NewRecorder()
			req := postJSON("/hero", tt.body)
			if tt.limit > 0 {
				req.Body = http.MaxBytesReader(res, req.Body, tt.limit)
			}

			var dst struct {
				Title string `json:"title"`
			}
			ok := decodeJSON(res, req, &dst, "test")

			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Equal(t, "a", dst.Title)
				return
			}
			require.Equal(t, tt.wantStatus, res.Code)
			require.Equal(t, tt.wantMessage, decodeProblem(t, res).Message)
		})
	}
}
