package hero

import (
	"context"
	"errors"
	"fmt"

	"github.com/cropcraft/server/internal/domain/ids"
	"github.com/cropcraft/server/internal/validation"
	"github.com/go-playground/validator/v10"
)

var inputMessages = validation.Messages{
	"required": "Title, subtitle and image URL are required",
	"imageurl": "Image URL is not allowed",
}

type Service struct {
	repo      Repository
	validator *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, validator: validation.New()}
}

// Get returns the Hero shown on the landing page, or nil when none exists.
func (s *Service) Get(ctx context.Context) (*Hero, error) {
	item, err := s.repo.First(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hero: %w", err)
	}
	return item, nil
}

func (s *Service) Create(ctx context.Context, input Input) (*Hero, error) {
	if err := validation.Check(s.validator, input, inputMessages); err != nil {
		return nil, err
	}

	item := Hero{
		ID:       ids.New(),
		Title:    input.Title,
		Subtitle: input.Subtitle,
		ImageURL: input.ImageURL,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create hero: %w", err)
	}
	return &item, nil
}

// Update replaces all fields of the Hero with the given id.
func (s *Service) Update(ctx context.Context, id string, input Input) (*Hero, error) {
	if err := validation.Check(s.validator, input, inputMessages); err != nil {
		return nil, err
	}
	if !ids.IsULID(id) {
		return nil, ErrNotFound
	}

	updated, err := s.repo.Update(ctx, Hero{
		ID:       ids.Normalize(id),
		Title:    input.Title,
		Subtitle: input.Subtitle,
		ImageURL: input.ImageURL,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update hero: %w", err)
	}
	return updated, nil
}
