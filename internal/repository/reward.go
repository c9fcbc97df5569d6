package repository

import (
	"context"

	"taubit/internal/domain"
)

// RewardRepository defines the persistence operations for the reward
// catalogue and redemptions.
type RewardRepository interface {
	// Create persists a new catalogue reward.
	Create(ctx context.Context, reward *domain.Reward) error

	// GetByID retrieves a reward by ID.
	GetByID(ctx context.Context, id string) (*domain.Reward, error)

	// ListAvailable retrieves all available rewards ordered by cost.
	ListAvailable(ctx context.Context) ([]*domain.Reward, error)

	// CreateRedemption records a user redeeming a reward.
	CreateRedemption(ctx context.Context, redemption *domain.Redemption) error

	// ListRedemptionsByUser retrieves a user's redemptions, newest first,
	// with reward name/cost joined in.
	ListRedemptionsByUser(ctx context.Context, userID string) ([]*domain.Redemption, error)
}
