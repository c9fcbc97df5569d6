package repository

import (
	"context"

	"taubit/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetActiveByUserID retrieves the user's active trip.
	// Returns nil if no active trip exists.
	GetActiveByUserID(ctx context.Context, userID string) (*domain.Trip, error)

	// Update updates an existing trip.
	Update(ctx context.Context, trip *domain.Trip) error

	// ListByUserID retrieves a page of the user's trips, newest first,
	// with line name/type joined in.
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.Trip, error)

	// CountByUserID returns the user's total trip count for pagination.
	CountByUserID(ctx context.Context, userID string) (int, error)
}
