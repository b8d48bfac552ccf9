package contacts

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cropcraft/server/internal/domain/ids"
	"github.com/cropcraft/server/internal/sanitize"
	"github.com/cropcraft/server/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const notifyTimeout = 10 * time.Second

var inputMessages = validation.Messages{
	"required":     "All fields are required",
	"contactemail": "Please enter a valid email",
}

type Service struct {
	repo      Repository
	notifier  Notifier
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time

	pending sync.WaitGroup
}

// NewService wires the contact store. notifier may be nil.
func NewService(repo Repository, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		notifier:  notifier,
		validator: validation.New(),
		logger:    logger.With().Str("component", "contacts").Logger(),
		now:       time.Now,
	}
}

// Create validates and stores a submission. Markup is stripped from the
// free-text fields before validation, so a name made only of tags counts as
// missing.
func (s *Service) Create(ctx context.Context, input Input) (*Contact, error) {
	input.Name = sanitize.Text(input.Name)
	input.Message = sanitize.Text(input.Message)

	if err := validation.Check(s.validator, input, inputMessages); err != nil {
		return nil, err
	}

	contact := Contact{
		ID:        ids.New(),
		Name:      input.Name,
		Email:     input.Email,
		Message:   input.Message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	s.notify(ctx, contact)
	return &contact, nil
}

// List returns every contact, newest first.
func (s *Service) List(ctx context.Context) ([]Contact, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	if items == nil {
		items = []Contact{}
	}
	slices.SortStableFunc(items, func(a, b Contact) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return items, nil
}

// notify sends the notification in the background. It never fails the
// submission; the contact is already stored.
func (s *Service) notify(ctx context.Context, contact Contact) {
	if s.notifier == nil {
		return
	}
	detached := context.WithoutCancel(ctx)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		notifyCtx, cancel := context.WithTimeout(detached, notifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyContact(notifyCtx, contact); err != nil {
			s.logger.Error().Err(err).Str("contact_id", contact.ID).Msg("contact notification failed")
		}
	}()
}

// Drain waits for in-flight notifications, or until ctx is done.
func (s *Service) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
