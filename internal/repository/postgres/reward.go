package postgres

import (
	"context"
	"database/sql"
	"errors"

	"taubit/internal/domain"
	"taubit/internal/repository"
)

// RewardRepository is a PostgreSQL implementation of repository.RewardRepository.
type RewardRepository struct {
	q Querier
}

// NewRewardRepository creates a new PostgreSQL reward repository.
func NewRewardRepository(db *sql.DB) *RewardRepository {
	return &RewardRepository{q: db}
}

// NewRewardRepositoryWithTx creates a reward repository using a transaction.
func NewRewardRepositoryWithTx(tx *sql.Tx) *RewardRepository {
	return &RewardRepository{q: tx}
}

const rewardColumns = `id, name, description, points_cost, category,
	is_premium, is_available, image_url, created_at`

// Create persists a new catalogue reward.
func (r *RewardRepository) Create(ctx context.Context, reward *domain.Reward) error {
	query := `
		INSERT INTO rewards (id, name, description, points_cost, category,
			is_premium, is_available, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		reward.ID,
		reward.Name,
		reward.Description,
		reward.PointsCost,
		reward.Category,
		reward.IsPremium,
		reward.IsAvailable,
		reward.ImageURL,
	)

	return err
}

// GetByID retrieves a reward by ID.
func (r *RewardRepository) GetByID(ctx context.Context, id string) (*domain.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards WHERE id = $1`

	var reward domain.Reward
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&reward.ID,
		&reward.Name,
		&reward.Description,
		&reward.PointsCost,
		&reward.Category,
		&reward.IsPremium,
		&reward.IsAvailable,
		&reward.ImageURL,
		&reward.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &reward, nil
}

// ListAvailable retrieves all available rewards ordered by cost.
func (r *RewardRepository) ListAvailable(ctx context.Context) ([]*domain.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards WHERE is_available ORDER BY points_cost`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rewards []*domain.Reward
	for rows.Next() {
		var reward domain.Reward
		if err := rows.Scan(
			&reward.ID,
			&reward.Name,
			&reward.Description,
			&reward.PointsCost,
			&reward.Category,
			&reward.IsPremium,
			&reward.IsAvailable,
			&reward.ImageURL,
			&reward.CreatedAt,
		); err != nil {
			return nil, err
		}
		rewards = append(rewards, &reward)
	}

	return rewards, rows.Err()
}

// CreateRedemption records a user redeeming a reward.
func (r *RewardRepository) CreateRedemption(ctx context.Context, redemption *domain.Redemption) error {
	query := `
		INSERT INTO user_rewards (id, user_id, reward_id, redeemed_at, status)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q.ExecContext(ctx, query,
		redemption.ID,
		redemption.UserID,
		redemption.RewardID,
		redemption.RedeemedAt,
		redemption.Status,
	)

	return err
}

// ListRedemptionsByUser retrieves a user's redemptions, newest first.
func (r *RewardRepository) ListRedemptionsByUser(ctx context.Context, userID string) ([]*domain.Redemption, error) {
	query := `
		SELECT ur.id, ur.user_id, ur.reward_id, ur.redeemed_at, ur.status,
			rw.name, rw.points_cost
		FROM user_rewards ur
		JOIN rewards rw ON ur.reward_id = rw.id
		WHERE ur.user_id = $1
		ORDER BY ur.redeemed_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var redemptions []*domain.Redemption
	for rows.Next() {
		var redemption domain.Redemption
		if err := rows.Scan(
			&redemption.ID,
			&redemption.UserID,
			&redemption.RewardID,
			&redemption.RedeemedAt,
			&redemption.Status,
			&redemption.RewardName,
			&redemption.PointsCost,
		); err != nil {
			return nil, err
		}
		redemptions = append(redemptions, &redemption)
	}

	return redemptions, rows.Err()
}

// Ensure RewardRepository implements repository.RewardRepository.
var _ repository.RewardRepository = (*RewardRepository)(nil)
