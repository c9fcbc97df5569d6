package repository

import (
	"context"
	"time"

	"taubit/internal/domain"
)

// UserRepository defines the persistence operations for user accounts.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByIDForUpdate retrieves a user and locks the row for the duration
	// of the surrounding transaction. Only meaningful on a transaction-scoped
	// repository.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.User, error)

	// UpdateStats writes the cumulative stat columns (points, weekly points,
	// experience, level, totals) from the given user.
	UpdateStats(ctx context.Context, user *domain.User) error

	// SetPremium updates the premium flag and expiry.
	SetPremium(ctx context.Context, id string, premium bool, expiry time.Time) error

	// UpdateProfile writes name and avatar.
	UpdateProfile(ctx context.Context, id, name, avatar string) error
}
