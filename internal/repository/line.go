package repository

import (
	"context"

	"taubit/internal/domain"
)

// LineFilter narrows List results. Zero values mean no filtering.
type LineFilter struct {
	Type   domain.LineType
	Status domain.LineStatus
}

// LineRepository defines the persistence operations for transit lines.
type LineRepository interface {
	// Create persists a new transit line.
	Create(ctx context.Context, line *domain.TransitLine) error

	// GetByID retrieves a line by ID.
	GetByID(ctx context.Context, id string) (*domain.TransitLine, error)

	// List retrieves lines matching the filter, ordered by name.
	List(ctx context.Context, filter LineFilter) ([]*domain.TransitLine, error)

	// UpdateRating writes the rating state columns (average, count,
	// reliability, noise, occupancy) from the given line.
	UpdateRating(ctx context.Context, line *domain.TransitLine) error
}
