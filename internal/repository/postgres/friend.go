package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"taubit/internal/domain"
	"taubit/internal/repository"
)

// FriendRepository is a PostgreSQL implementation of repository.FriendRepository.
type FriendRepository struct {
	q Querier
}

// NewFriendRepository creates a new PostgreSQL friend repository.
func NewFriendRepository(db *sql.DB) *FriendRepository {
	return &FriendRepository{q: db}
}

// Create persists a new friend request.
func (r *FriendRepository) Create(ctx context.Context, friendship *domain.Friendship) error {
	query := `
		INSERT INTO friends (id, user_id, friend_id, status)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.q.ExecContext(ctx, query,
		friendship.ID,
		friendship.UserID,
		friendship.FriendID,
		friendship.Status,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return repository.ErrDuplicate
		}
		return err
	}

	return nil
}

// GetPair retrieves the friendship between two users in either direction.
// Returns nil if none exists.
func (r *FriendRepository) GetPair(ctx context.Context, userID, friendID string) (*domain.Friendship, error) {
	query := `
		SELECT id, user_id, friend_id, status, created_at
		FROM friends
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
		LIMIT 1
	`

	var friendship domain.Friendship
	err := r.q.QueryRowContext(ctx, query, userID, friendID).Scan(
		&friendship.ID,
		&friendship.UserID,
		&friendship.FriendID,
		&friendship.Status,
		&friendship.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &friendship, nil
}

// UpdateStatus updates the status of a friendship.
func (r *FriendRepository) UpdateStatus(ctx context.Context, id string, status domain.FriendStatus) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE friends SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// ListByUser retrieves a user's friendships with the given status; the
// counterpart's name and avatar are joined in regardless of direction.
func (r *FriendRepository) ListByUser(ctx context.Context, userID string, status domain.FriendStatus) ([]*domain.Friendship, error) {
	query := `
		SELECT f.id, f.user_id, f.friend_id, f.status, f.created_at, u.name, u.avatar
		FROM friends f
		JOIN users u ON u.id = CASE WHEN f.user_id = $1 THEN f.friend_id ELSE f.user_id END
		WHERE (f.user_id = $1 OR f.friend_id = $1) AND f.status = $2
		ORDER BY f.created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friendships []*domain.Friendship
	for rows.Next() {
		var friendship domain.Friendship
		if err := rows.Scan(
			&friendship.ID,
			&friendship.UserID,
			&friendship.FriendID,
			&friendship.Status,
			&friendship.CreatedAt,
			&friendship.FriendName,
			&friendship.FriendAvatar,
		); err != nil {
			return nil, err
		}
		friendships = append(friendships, &friendship)
	}

	return friendships, rows.Err()
}

// Ensure FriendRepository implements repository.FriendRepository.
var _ repository.FriendRepository = (*FriendRepository)(nil)
