package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsContactEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"jane@example.com", true},
		{"jane.doe@mail.example.org", true},
		{"j-d_1@sub-domain.co.uk", true},
		{"jane@example.io", true},
		{"jane@example", false},
		{"jane.example.com", false},
		{"jane@example.museum", false},
		{"jane@example.c", false},
		{"@example.com", false},
		{"jane@.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			require.Equal(t, tt.valid, IsContactEmail(tt.email))
		})
	}
}

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,contactemail"`
	Image string `json:"imageUrl" validate:"omitempty,imageurl"`
}

func TestCheckPrefersRequired(t *testing.T) {
	v := New()
	messages := Messages{"required": "All fields are required", "contactemail": "Please enter a valid email"}

	err := Check(v, sample{Email: "not-an-email"}, messages)

	var vErr Error
	require.True(t, errors.As(err, &vErr))
	require.Equal(t, "All fields are required", vErr.Message)
	require.Equal(t, "name", vErr.Field)
}

func TestCheckCustomTags(t *testing.T) {
	v := New()
	messages := Messages{"contactemail": "Please enter a valid email", "*": "Invalid input"}

	err := Check(v, sample{Name: "Jane", Email: "jane@example"}, messages)
	var vErr Error
	require.True(t, errors.As(err, &vErr))
	require.Equal(t, "Please enter a valid email", vErr.Message)

	err = Check(v, sample{Name: "Jane", Email: "jane@example.com", Image: "javascript:alert(1)"}, messages)
	require.True(t, errors.As(err, &vErr))
	require.Equal(t, "imageUrl", vErr.Field)
	require.Equal(t, "Invalid input", vErr.Message)

	require.NoError(t, Check(v, sample{Name: "Jane", Email: "jane@example.com", Image: "img/a.png"}, messages))
}
