// Package contacts stores inquiries submitted through the public contact
// form.
package contacts

import (
	"context"
	"time"
)

// AckMessage is returned to the submitter in place of the stored record.
const AckMessage = "Contact message sent successfully!"

// Contact is an append-only inquiry.
type Contact struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

// Input is the public form payload.
type Input struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,contactemail"`
	Message string `json:"message" validate:"required"`
}

// Repository stores contacts. List returns newest first.
type Repository interface {
	Create(ctx context.Context, contact Contact) error
	List(ctx context.Context) ([]Contact, error)
}

// Notifier is told about every stored contact.
type Notifier interface {
	NotifyContact(ctx context.Context, contact Contact) error
}
