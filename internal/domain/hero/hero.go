package hero

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("hero not found")

// Hero is the landing page banner block.
type Hero struct {
	ID       string
	Title    string
	Subtitle string
	ImageURL string
}

// Input carries the editable Hero fields for create and update.
type Input struct {
	Title    string `json:"title" validate:"required"`
	Subtitle string `json:"subtitle" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"required,imageurl"`
}

// Repository stores Hero records. The store does not prevent more than one
// row; First returns the oldest and ErrNotFound when there are none.
type Repository interface {
	First(ctx context.Context) (*Hero, error)
	Create(ctx context.Context, hero Hero) error
	Update(ctx context.Context, hero Hero) (*Hero, error)
}
