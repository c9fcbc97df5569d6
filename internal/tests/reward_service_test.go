package tests

import (
	"context"
	"errors"
	"testing"

	"taubit/internal/domain"
	"taubit/internal/repository"
	"taubit/internal/service"
)

// ──────────────────────────────────────────────
// REWARD REDEMPTION EDGE CASES
// ──────────────────────────────────────────────

func TestRedeem_UnknownRewardRejected(t *testing.T) {
	t.Parallel()

	// Paths that fail before the transaction never touch the database.
	svc := service.NewRewardService(nil, NewMockRewardRepository(), NewMockUserRepository(), NewMockLockStore(), nil)

	_, err := svc.Redeem(context.Background(), "user-1", "no-such-reward")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRedeem_UnavailableRewardRejected(t *testing.T) {
	t.Parallel()

	rewardRepo := NewMockRewardRepository()
	rewardRepo.AddReward(&domain.Reward{
		ID:          "reward-1",
		Name:        "Free Coffee",
		PointsCost:  100,
		IsAvailable: false,
	})

	svc := service.NewRewardService(nil, rewardRepo, NewMockUserRepository(), NewMockLockStore(), nil)

	_, err := svc.Redeem(context.Background(), "user-1", "reward-1")
	if !errors.Is(err, service.ErrRewardUnavailable) {
		t.Errorf("expected ErrRewardUnavailable, got %v", err)
	}
}

func TestRedeem_AccountLockHeldRejected(t *testing.T) {
	t.Parallel()

	lockStore := NewMockLockStore()
	lockStore.HoldAccountLock("user-1")

	svc := service.NewRewardService(nil, NewMockRewardRepository(), NewMockUserRepository(), lockStore, nil)

	_, err := svc.Redeem(context.Background(), "user-1", "reward-1")
	if !errors.Is(err, service.ErrAccountBusy) {
		t.Errorf("expected ErrAccountBusy, got %v", err)
	}
}

func TestRedeem_MissingIDsRejected(t *testing.T) {
	t.Parallel()

	svc := service.NewRewardService(nil, NewMockRewardRepository(), NewMockUserRepository(), NewMockLockStore(), nil)

	if _, err := svc.Redeem(context.Background(), "", "reward-1"); !errors.Is(err, service.ErrInvalidUserID) {
		t.Errorf("expected ErrInvalidUserID, got %v", err)
	}
	if _, err := svc.Redeem(context.Background(), "user-1", ""); !errors.Is(err, service.ErrInvalidRewardID) {
		t.Errorf("expected ErrInvalidRewardID, got %v", err)
	}
}

func TestListRewards_OnlyAvailableOrderedByCost(t *testing.T) {
	t.Parallel()

	rewardRepo := NewMockRewardRepository()
	rewardRepo.AddReward(&domain.Reward{ID: "r1", Name: "Transit Credit", PointsCost: 200, IsAvailable: true})
	rewardRepo.AddReward(&domain.Reward{ID: "r2", Name: "Free Coffee", PointsCost: 100, IsAvailable: true})
	rewardRepo.AddReward(&domain.Reward{ID: "r3", Name: "Retired Promo", PointsCost: 50, IsAvailable: false})

	svc := service.NewRewardService(nil, rewardRepo, NewMockUserRepository(), NewMockLockStore(), nil)

	rewards, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rewards) != 2 {
		t.Fatalf("expected 2 available rewards, got %d", len(rewards))
	}
	if rewards[0].ID != "r2" || rewards[1].ID != "r1" {
		t.Errorf("expected cheapest first, got %s then %s", rewards[0].ID, rewards[1].ID)
	}
}

func TestHistory_ScopedToUser(t *testing.T) {
	t.Parallel()

	rewardRepo := NewMockRewardRepository()
	if err := rewardRepo.CreateRedemption(context.Background(), &domain.Redemption{ID: "rd1", UserID: "user-1", RewardID: "r1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := rewardRepo.CreateRedemption(context.Background(), &domain.Redemption{ID: "rd2", UserID: "user-2", RewardID: "r1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc := service.NewRewardService(nil, rewardRepo, NewMockUserRepository(), NewMockLockStore(), nil)

	history, err := svc.History(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 || history[0].ID != "rd1" {
		t.Errorf("expected only user-1 redemptions, got %v", history)
	}
}
