package postgres

import (
	"context"
	"database/sql"
	"errors"

	"taubit/internal/domain"
	"taubit/internal/repository"
)

// LineRepository is a PostgreSQL implementation of repository.LineRepository.
type LineRepository struct {
	q Querier
}

// NewLineRepository creates a new PostgreSQL line repository.
func NewLineRepository(db *sql.DB) *LineRepository {
	return &LineRepository{q: db}
}

// NewLineRepositoryWithTx creates a line repository using a transaction.
func NewLineRepositoryWithTx(tx *sql.Tx) *LineRepository {
	return &LineRepository{q: tx}
}

const lineColumns = `id, name, type, rating, rating_count, reliability,
	noise_level, occupancy, status, created_at, updated_at`

// Create persists a new transit line.
func (r *LineRepository) Create(ctx context.Context, line *domain.TransitLine) error {
	query := `
		INSERT INTO transit_lines (id, name, type, rating, rating_count, reliability,
			noise_level, occupancy, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		line.ID,
		line.Name,
		line.Type,
		line.AverageRating,
		line.RatingCount,
		line.Reliability,
		line.NoiseLevel,
		line.Occupancy,
		line.Status,
	)

	return err
}

// GetByID retrieves a line by ID.
func (r *LineRepository) GetByID(ctx context.Context, id string) (*domain.TransitLine, error) {
	query := `SELECT ` + lineColumns + ` FROM transit_lines WHERE id = $1`
	return scanLine(r.q.QueryRowContext(ctx, query, id))
}

// List retrieves lines matching the filter, ordered by name.
func (r *LineRepository) List(ctx context.Context, filter repository.LineFilter) ([]*domain.TransitLine, error) {
	query := `SELECT ` + lineColumns + ` FROM transit_lines WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $1`
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		if len(args) == 1 {
			query += ` AND type = $1`
		} else {
			query += ` AND type = $2`
		}
	}

	query += ` ORDER BY name`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*domain.TransitLine
	for rows.Next() {
		var line domain.TransitLine
		if err := rows.Scan(
			&line.ID,
			&line.Name,
			&line.Type,
			&line.AverageRating,
			&line.RatingCount,
			&line.Reliability,
			&line.NoiseLevel,
			&line.Occupancy,
			&line.Status,
			&line.CreatedAt,
			&line.UpdatedAt,
		); err != nil {
			return nil, err
		}
		lines = append(lines, &line)
	}

	return lines, rows.Err()
}

// UpdateRating writes the rating state columns from the given line.
func (r *LineRepository) UpdateRating(ctx context.Context, line *domain.TransitLine) error {
	query := `
		UPDATE transit_lines
		SET rating = $1, rating_count = $2, reliability = $3,
			noise_level = $4, occupancy = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
	`

	result, err := r.q.ExecContext(ctx, query,
		line.AverageRating,
		line.RatingCount,
		line.Reliability,
		line.NoiseLevel,
		line.Occupancy,
		line.ID,
	)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

func scanLine(row *sql.Row) (*domain.TransitLine, error) {
	var line domain.TransitLine

	err := row.Scan(
		&line.ID,
		&line.Name,
		&line.Type,
		&line.AverageRating,
		&line.RatingCount,
		&line.Reliability,
		&line.NoiseLevel,
		&line.Occupancy,
		&line.Status,
		&line.CreatedAt,
		&line.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &line, nil
}

// Ensure LineRepository implements repository.LineRepository.
var _ repository.LineRepository = (*LineRepository)(nil)
