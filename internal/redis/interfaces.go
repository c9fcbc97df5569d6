package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireAccountLock(ctx context.Context, userID string, ttl time.Duration) (bool, error)
	ReleaseAccountLock(ctx context.Context, userID string) error
	AcquireLineLock(ctx context.Context, lineID string, ttl time.Duration) (bool, error)
	ReleaseLineLock(ctx context.Context, lineID string) error
}

// LeaderboardStoreInterface defines the interface for the weekly leaderboard.
type LeaderboardStoreInterface interface {
	AddPoints(ctx context.Context, userID string, points int, now time.Time) error
	Top(ctx context.Context, n int, now time.Time) ([]LeaderboardEntry, error)
	Reset(ctx context.Context, now time.Time) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface        = (*LockStore)(nil)
	_ LeaderboardStoreInterface = (*LeaderboardStore)(nil)
)
