package repository

import (
	"context"

	"taubit/internal/domain"
)

// SessionRepository defines the persistence operations for auth sessions.
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *domain.Session) error

	// GetByTokenHash retrieves a session by its token hash.
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)

	// DeleteByTokenHash removes a session, revoking the token.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteExpired removes all expired sessions and reports how many.
	DeleteExpired(ctx context.Context) (int64, error)
}
