package service

import (
	"context"
	"errors"
	"time"

	"taubit/internal/redis"
	"taubit/internal/repository"
)

// LeaderboardService serves the weekly points leaderboard.
type LeaderboardService struct {
	store    redis.LeaderboardStoreInterface
	userRepo repository.UserRepository
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(store redis.LeaderboardStoreInterface, userRepo repository.UserRepository) *LeaderboardService {
	return &LeaderboardService{store: store, userRepo: userRepo}
}

// LeaderboardRow is one ranked entry with the user's display name.
type LeaderboardRow struct {
	Rank   int
	UserID string
	Name   string
	Avatar string
	Points int
}

// Weekly retrieves the top earners for the current ISO week.
func (s *LeaderboardService) Weekly(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	entries, err := s.store.Top(ctx, limit, time.Now())
	if err != nil {
		return nil, err
	}

	rows := make([]LeaderboardRow, 0, len(entries))
	for _, e := range entries {
		row := LeaderboardRow{
			Rank:   e.Rank,
			UserID: e.UserID,
			Points: e.Points,
		}
		user, err := s.userRepo.GetByID(ctx, e.UserID)
		if err != nil {
			// Deleted accounts stay on the board until the week rolls over.
			if errors.Is(err, repository.ErrNotFound) {
				rows = append(rows, row)
				continue
			}
			return nil, err
		}
		row.Name = user.Name
		row.Avatar = user.Avatar
		rows = append(rows, row)
	}
	return rows, nil
}
