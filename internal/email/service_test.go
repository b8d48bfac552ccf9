package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/cropcraft/server/internal/config"
	"github.com/cropcraft/server/internal/domain/contacts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestValidateEmailAddress(t *testing.T) {
	valid := []string{
		"user@example.com",
		"test.user@example.com",
		"user+tag@example.co.uk",
		"Site <site@example.com>",
	}
	for _, addr := range valid {
		t.Run(addr, func(t *testing.T) {
			require.NoError(t, validateEmailAddress(addr))
		})
	}

	invalid := []string{
		"",
		"notanemail",
		"@example.com",
		"user@",
		"user@@example.com",
		"victim@example.com\r\nBcc: attacker@evil.com",
	}
	for _, addr := range invalid {
		t.Run("invalid "+addr, func(t *testing.T) {
			require.Error(t, validateEmailAddress(addr))
		})
	}
}

func TestNewService_RejectsBadAddressesWhenEnabled(t *testing.T) {
	cfg := enabledConfig()
	cfg.From = "not an address"
	_, err := NewService(cfg, "", zerolog.Nop())
	require.Error(t, err)

	cfg = enabledConfig()
	cfg.NotifyTo = "nobody"
	_, err = NewService(cfg, "", zerolog.Nop())
	require.Error(t, err)
}

func TestNotifyContact_DisabledOnlyLogs(t *testing.T) {
	var buf bytes.Buffer
	svc, err := NewService(config.EmailConfig{}, "", zerolog.New(&buf))
	require.NoError(t, err)
	require.Nil(t, svc.resendClient)

	err = svc.NotifyContact(context.Background(), contacts.Contact{ID: "c1", Name: "A", Email: "a@example.com", Message: "hi"})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "skipping contact notification")
	require.Contains(t, buf.String(), `"contact_id":"c1"`)
}

func TestSingleLine(t *testing.T) {
	require.Equal(t, "Jane Grower", singleLine("Jane\r\nGrower "))
}
