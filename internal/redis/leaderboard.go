package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LeaderboardStore maintains the weekly points leaderboard in a Redis
// sorted set, one set per ISO week. Old weeks expire on their own.
type LeaderboardStore struct {
	client *redis.Client
}

// NewLeaderboardStore creates a new LeaderboardStore.
func NewLeaderboardStore(client *redis.Client) *LeaderboardStore {
	return &LeaderboardStore{client: client}
}

// Entries older than two weeks are useless; let Redis reclaim them.
const leaderboardTTL = 14 * 24 * time.Hour

// LeaderboardEntry is one row of the weekly leaderboard.
type LeaderboardEntry struct {
	UserID string
	Points int
	Rank   int
}

func weeklyKey(now time.Time) string {
	year, week := now.ISOWeek()
	return fmt.Sprintf("leaderboard:weekly:%d-%02d", year, week)
}

// AddPoints adds earned points to the user's score for the current week.
func (s *LeaderboardStore) AddPoints(ctx context.Context, userID string, points int, now time.Time) error {
	key := weeklyKey(now)

	pipe := s.client.Pipeline()
	pipe.ZIncrBy(ctx, key, float64(points), userID)
	pipe.Expire(ctx, key, leaderboardTTL)
	_, err := pipe.Exec(ctx)

	return err
}

// Top returns the current week's top-n users by points, best first.
func (s *LeaderboardStore) Top(ctx context.Context, n int, now time.Time) ([]LeaderboardEntry, error) {
	results, err := s.client.ZRevRangeWithScores(ctx, weeklyKey(now), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, r := range results {
		userID, ok := r.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID: userID,
			Points: int(r.Score),
			Rank:   i + 1,
		})
	}

	return entries, nil
}

// Reset drops the current week's leaderboard. Exposed for the external
// weekly reset job.
func (s *LeaderboardStore) Reset(ctx context.Context, now time.Time) error {
	return s.client.Del(ctx, weeklyKey(now)).Err()
}
