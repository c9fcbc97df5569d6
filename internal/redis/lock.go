package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis. Account and line locks
// give trip settlement, reward redemption, and rating updates their
// single-writer semantics across processes.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireAccountLock attempts to acquire the settlement lock for a user
// account. Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireAccountLock(ctx context.Context, userID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:account:%s", userID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseAccountLock releases the settlement lock for a user account.
func (s *LockStore) ReleaseAccountLock(ctx context.Context, userID string) error {
	key := fmt.Sprintf("lock:account:%s", userID)

	return s.client.Del(ctx, key).Err()
}

// AcquireLineLock attempts to acquire the rating lock for a transit line.
func (s *LockStore) AcquireLineLock(ctx context.Context, lineID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:line:%s", lineID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseLineLock releases the rating lock for a transit line.
func (s *LockStore) ReleaseLineLock(ctx context.Context, lineID string) error {
	key := fmt.Sprintf("lock:line:%s", lineID)

	return s.client.Del(ctx, key).Err()
}
