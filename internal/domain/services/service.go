package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cropcraft/server/internal/domain/ids"
	"github.com/cropcraft/server/internal/validation"
	"github.com/go-playground/validator/v10"
)

var inputMessages = validation.Messages{
	"required": "Title and description are required",
}

type Service struct {
	repo      Repository
	validator *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, validator: validation.New()}
}

func (s *Service) List(ctx context.Context) ([]Entry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// CreateBatch validates and stores exactly BatchSize entries in one write.
// Existing entries are left alone; the count rule applies to the batch only.
func (s *Service) CreateBatch(ctx context.Context, inputs []Input) ([]Entry, error) {
	if len(inputs) != BatchSize {
		return nil, validation.Error{Field: "services", Message: fmt.Sprintf("Exactly %d services required", BatchSize)}
	}

	entries := make([]Entry, 0, len(inputs))
	for _, input := range inputs {
		if err := validation.Check(s.validator, input, inputMessages); err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			ID:          ids.New(),
			Title:       input.Title,
			Description: input.Description,
		})
	}

	if err := s.repo.CreateBatch(ctx, entries); err != nil {
		return nil, fmt.Errorf("create services: %w", err)
	}
	return entries, nil
}

// UpdateOne replaces the title and description of one entry.
func (s *Service) UpdateOne(ctx context.Context, id string, input Input) (*Entry, error) {
	if err := validation.Check(s.validator, input, inputMessages); err != nil {
		return nil, err
	}
	if !ids.IsULID(id) {
		return nil, ErrNotFound
	}

	updated, err := s.repo.Update(ctx, Entry{
		ID:          ids.Normalize(id),
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update service: %w", err)
	}
	return updated, nil
}
