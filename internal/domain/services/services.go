// Package services manages the three featured service entries shown on the
// landing page.
package services

import (
	"context"
	"errors"
)

// BatchSize is the number of entries the landing page expects.
const BatchSize = 3

var ErrNotFound = errors.New("service not found")

// Entry is one featured service.
type Entry struct {
	ID          string
	Title       string
	Description string
}

// Input carries the editable fields of an Entry.
type Input struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Repository stores entries. CreateBatch must write all entries or none.
type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	CreateBatch(ctx context.Context, entries []Entry) error
	Update(ctx context.Context, entry Entry) (*Entry, error)
}
