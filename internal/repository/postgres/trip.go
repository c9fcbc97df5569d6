package postgres

import (
	"context"
	"database/sql"
	"errors"

	"taubit/internal/domain"
	"taubit/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (id, user_id, transit_line_id, start_time, end_time,
			start_lat, start_lng, end_lat, end_lng,
			distance, duration, points_earned, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	var lineID sql.NullString
	if trip.TransitLineID != "" {
		lineID = sql.NullString{String: trip.TransitLineID, Valid: true}
	}

	var endTime sql.NullTime
	if !trip.EndTime.IsZero() {
		endTime = sql.NullTime{Time: trip.EndTime, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.UserID,
		lineID,
		trip.StartTime,
		endTime,
		trip.StartLocation.Lat,
		trip.StartLocation.Lng,
		trip.EndLocation.Lat,
		trip.EndLocation.Lng,
		trip.DistanceKm,
		trip.DurationMinutes,
		trip.PointsEarned,
		trip.Status,
	)

	return err
}

const tripColumns = `t.id, t.user_id, t.transit_line_id, t.start_time, t.end_time,
	t.start_lat, t.start_lng, t.end_lat, t.end_lng,
	t.distance, t.duration, t.points_earned, t.status, t.created_at`

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips t WHERE t.id = $1`

	trip, err := scanTrip(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return trip, nil
}

// GetActiveByUserID retrieves the user's active trip.
// Returns nil if no active trip exists.
func (r *TripRepository) GetActiveByUserID(ctx context.Context, userID string) (*domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips t
		WHERE t.user_id = $1 AND t.status = $2
		ORDER BY t.start_time DESC
		LIMIT 1
	`

	trip, err := scanTrip(r.q.QueryRowContext(ctx, query, userID, domain.TripStatusActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return trip, nil
}

// Update updates an existing trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips
		SET end_time = $1, end_lat = $2, end_lng = $3,
			distance = $4, duration = $5, points_earned = $6, status = $7
		WHERE id = $8
	`

	var endTime sql.NullTime
	if !trip.EndTime.IsZero() {
		endTime = sql.NullTime{Time: trip.EndTime, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query,
		endTime,
		trip.EndLocation.Lat,
		trip.EndLocation.Lng,
		trip.DistanceKm,
		trip.DurationMinutes,
		trip.PointsEarned,
		trip.Status,
		trip.ID,
	)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// ListByUserID retrieves a page of the user's trips, newest first.
func (r *TripRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + `, tl.name, tl.type
		FROM trips t
		LEFT JOIN transit_lines tl ON t.transit_line_id = tl.id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		var trip domain.Trip
		var lineID, lineName, lineType sql.NullString
		var endTime sql.NullTime

		if err := rows.Scan(
			&trip.ID,
			&trip.UserID,
			&lineID,
			&trip.StartTime,
			&endTime,
			&trip.StartLocation.Lat,
			&trip.StartLocation.Lng,
			&trip.EndLocation.Lat,
			&trip.EndLocation.Lng,
			&trip.DistanceKm,
			&trip.DurationMinutes,
			&trip.PointsEarned,
			&trip.Status,
			&trip.CreatedAt,
			&lineName,
			&lineType,
		); err != nil {
			return nil, err
		}

		if lineID.Valid {
			trip.TransitLineID = lineID.String
		}
		if endTime.Valid {
			trip.EndTime = endTime.Time
		}
		if lineName.Valid {
			trip.TransitLineName = lineName.String
		}
		if lineType.Valid {
			trip.TransitLineType = domain.LineType(lineType.String)
		}

		trips = append(trips, &trip)
	}

	return trips, rows.Err()
}

// CountByUserID returns the user's total trip count.
func (r *TripRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func scanTrip(row *sql.Row) (*domain.Trip, error) {
	var trip domain.Trip
	var lineID sql.NullString
	var endTime sql.NullTime

	err := row.Scan(
		&trip.ID,
		&trip.UserID,
		&lineID,
		&trip.StartTime,
		&endTime,
		&trip.StartLocation.Lat,
		&trip.StartLocation.Lng,
		&trip.EndLocation.Lat,
		&trip.EndLocation.Lng,
		&trip.DistanceKm,
		&trip.DurationMinutes,
		&trip.PointsEarned,
		&trip.Status,
		&trip.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lineID.Valid {
		trip.TransitLineID = lineID.String
	}
	if endTime.Valid {
		trip.EndTime = endTime.Time
	}

	return &trip, nil
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
