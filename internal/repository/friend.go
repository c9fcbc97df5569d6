package repository

import (
	"context"

	"taubit/internal/domain"
)

// FriendRepository defines the persistence operations for friendships.
type FriendRepository interface {
	// Create persists a new friend request.
	Create(ctx context.Context, friendship *domain.Friendship) error

	// GetPair retrieves the friendship between two users in either
	// direction. Returns nil if none exists.
	GetPair(ctx context.Context, userID, friendID string) (*domain.Friendship, error)

	// UpdateStatus updates the status of a friendship.
	UpdateStatus(ctx context.Context, id string, status domain.FriendStatus) error

	// ListByUser retrieves a user's friendships (either direction) with the
	// given status, with the counterpart's name/avatar joined in.
	ListByUser(ctx context.Context, userID string, status domain.FriendStatus) ([]*domain.Friendship, error)
}
