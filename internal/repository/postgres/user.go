package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"taubit/internal/domain"
	"taubit/internal/repository"
)

// UserRepository is a PostgreSQL implementation of repository.UserRepository.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{q: db}
}

// NewUserRepositoryWithTx creates a user repository using a transaction.
func NewUserRepositoryWithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `id, email, password_hash, name, avatar, points, weekly_points,
	experience, level, total_trips, total_distance, total_time,
	is_premium, premium_expiry, created_at, updated_at`

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, avatar, points, weekly_points,
			experience, level, total_trips, total_distance, total_time, is_premium, premium_expiry)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	var expiry sql.NullTime
	if !user.PremiumExpiry.IsZero() {
		expiry = sql.NullTime{Time: user.PremiumExpiry, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Avatar,
		user.Points,
		user.WeeklyPoints,
		user.Experience,
		user.Level,
		user.TotalTrips,
		user.TotalDistanceKm,
		user.TotalTimeMinutes,
		user.IsPremium,
		expiry,
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

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.q.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.q.QueryRowContext(ctx, query, email))
}

// GetByIDForUpdate retrieves a user and locks the row until the surrounding
// transaction commits or rolls back.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	return r.scanUser(r.q.QueryRowContext(ctx, query, id))
}

// UpdateStats writes the cumulative stat columns from the given user.
func (r *UserRepository) UpdateStats(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET points = $1, weekly_points = $2, experience = $3, level = $4,
			total_trips = $5, total_distance = $6, total_time = $7,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $8
	`

	result, err := r.q.ExecContext(ctx, query,
		user.Points,
		user.WeeklyPoints,
		user.Experience,
		user.Level,
		user.TotalTrips,
		user.TotalDistanceKm,
		user.TotalTimeMinutes,
		user.ID,
	)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// SetPremium updates the premium flag and expiry.
func (r *UserRepository) SetPremium(ctx context.Context, id string, premium bool, expiry time.Time) error {
	query := `
		UPDATE users
		SET is_premium = $1, premium_expiry = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`

	var nullExpiry sql.NullTime
	if !expiry.IsZero() {
		nullExpiry = sql.NullTime{Time: expiry, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query, premium, nullExpiry, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// UpdateProfile writes name and avatar.
func (r *UserRepository) UpdateProfile(ctx context.Context, id, name, avatar string) error {
	query := `
		UPDATE users
		SET name = $1, avatar = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`

	result, err := r.q.ExecContext(ctx, query, name, avatar, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

func (r *UserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var expiry sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Avatar,
		&user.Points,
		&user.WeeklyPoints,
		&user.Experience,
		&user.Level,
		&user.TotalTrips,
		&user.TotalDistanceKm,
		&user.TotalTimeMinutes,
		&user.IsPremium,
		&expiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if expiry.Valid {
		user.PremiumExpiry = expiry.Time
	}

	return &user, nil
}

func requireRowsAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Ensure UserRepository implements repository.UserRepository.
var _ repository.UserRepository = (*UserRepository)(nil)
