package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/mail"
	"strings"
	"time"

	"github.com/cropcraft/server/internal/config"
	"github.com/cropcraft/server/internal/domain/contacts"
	"github.com/cropcraft/server/internal/metrics"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Service sends staff notifications through Resend.
type Service struct {
	config       config.EmailConfig
	adminURL     string
	templates    *template.Template
	resendClient *resend.Client
	logger       zerolog.Logger
}

// ContactNotificationData feeds templates/contact_notification.html
type ContactNotificationData struct {
	Name       string
	Email      string
	Message    string
	ReceivedAt string
	AdminURL   string
}

// NewService parses the embedded templates and, when email is enabled,
// builds the Resend client. adminURL is linked from notifications and may
// be empty.
func NewService(cfg config.EmailConfig, adminURL string, logger zerolog.Logger) (*Service, error) {
	if cfg.Enabled {
		if err := validateEmailAddress(cfg.From); err != nil {
			return nil, fmt.Errorf("invalid sender email in config: %w", err)
		}
		if err := validateEmailAddress(cfg.NotifyTo); err != nil {
			return nil, fmt.Errorf("invalid notification recipient in config: %w", err)
		}
	}

	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	svc := &Service{
		config:    cfg,
		adminURL:  adminURL,
		templates: templates,
		logger:    logger.With().Str("component", "email").Logger(),
	}
	if cfg.Enabled {
		svc.resendClient = resend.NewClient(cfg.ResendAPIKey)
	}
	return svc, nil
}

// NotifyContact emails the configured staff address about a new contact.
// With email disabled it only logs.
func (s *Service) NotifyContact(ctx context.Context, contact contacts.Contact) error {
	if !s.config.Enabled {
		s.logger.Info().
			Str("contact_id", contact.ID).
			Msg("email disabled, skipping contact notification")
		metrics.ContactNotifications.WithLabelValues("skipped").Inc()
		return nil
	}

	htmlBody, err := s.renderTemplate("contact_notification.html", ContactNotificationData{
		Name:       contact.Name,
		Email:      contact.Email,
		Message:    contact.Message,
		ReceivedAt: contact.CreatedAt.UTC().Format(time.RFC1123),
		AdminURL:   s.adminURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render contact notification: %w", err)
	}

	subject := "New contact message from " + singleLine(contact.Name)
	replyTo := ""
	if validateEmailAddress(contact.Email) == nil {
		replyTo = contact.Email
	}
	if err := s.sendViaResend(ctx, s.config.NotifyTo, subject, htmlBody, replyTo); err != nil {
		metrics.ContactNotifications.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to send contact notification: %w", err)
	}
	metrics.ContactNotifications.WithLabelValues("sent").Inc()
	return nil
}

// validateEmailAddress rejects malformed addresses and header injection.
func validateEmailAddress(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("invalid email address: contains newline characters")
	}
	return nil
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (s *Service) renderTemplate(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
