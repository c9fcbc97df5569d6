package tests

import (
	"context"
	"testing"
	"time"

	"taubit/internal/domain"
	"taubit/internal/service"
)

// ──────────────────────────────────────────────
// WEEKLY LEADERBOARD
// ──────────────────────────────────────────────

func TestLeaderboard_RanksByPoints(t *testing.T) {
	t.Parallel()

	store := NewMockLeaderboardStore()
	now := time.Now()
	_ = store.AddPoints(context.Background(), "user-1", 300, now)
	_ = store.AddPoints(context.Background(), "user-2", 500, now)
	_ = store.AddPoints(context.Background(), "user-3", 100, now)

	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{ID: "user-1", Name: "One"})
	userRepo.AddUser(&domain.User{ID: "user-2", Name: "Two"})
	userRepo.AddUser(&domain.User{ID: "user-3", Name: "Three"})

	svc := service.NewLeaderboardService(store, userRepo)

	rows, err := svc.Weekly(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].UserID != "user-2" || rows[0].Rank != 1 || rows[0].Points != 500 {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[0].Name != "Two" {
		t.Errorf("expected name joined in, got %q", rows[0].Name)
	}
	if rows[2].UserID != "user-3" {
		t.Errorf("expected user-3 last, got %s", rows[2].UserID)
	}
}

func TestLeaderboard_AccumulatesAcrossTrips(t *testing.T) {
	t.Parallel()

	store := NewMockLeaderboardStore()
	now := time.Now()
	_ = store.AddPoints(context.Background(), "user-1", 150, now)
	_ = store.AddPoints(context.Background(), "user-1", 80, now)

	if store.Score("user-1") != 230 {
		t.Errorf("expected 230 points, got %d", store.Score("user-1"))
	}
}

func TestLeaderboard_DeletedUserKeptWithoutName(t *testing.T) {
	t.Parallel()

	store := NewMockLeaderboardStore()
	_ = store.AddPoints(context.Background(), "ghost", 400, time.Now())

	svc := service.NewLeaderboardService(store, NewMockUserRepository())

	rows, err := svc.Weekly(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Name != "" {
		t.Errorf("expected no name for deleted account, got %q", rows[0].Name)
	}
	if rows[0].Points != 400 {
		t.Errorf("expected 400 points, got %d", rows[0].Points)
	}
}

func TestLeaderboard_LimitClamped(t *testing.T) {
	t.Parallel()

	store := NewMockLeaderboardStore()
	now := time.Now()
	for _, userID := range []string{"a", "b", "c", "d", "e"} {
		_ = store.AddPoints(context.Background(), userID, 10, now)
	}

	svc := service.NewLeaderboardService(store, NewMockUserRepository())

	rows, err := svc.Weekly(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("expected 3 rows, got %d", len(rows))
	}

	// Zero and out-of-range limits fall back to the default.
	rows, err = svc.Weekly(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 5 {
		t.Errorf("expected all 5 rows under the default limit, got %d", len(rows))
	}
}
