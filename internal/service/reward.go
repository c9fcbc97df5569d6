package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"taubit/internal/domain"
	"taubit/internal/redis"
	"taubit/internal/repository"
	"taubit/internal/repository/postgres"
)

// RewardService handles the reward catalogue and redemptions.
type RewardService struct {
	db                  *sql.DB
	rewardRepo          repository.RewardRepository
	userRepo            repository.UserRepository
	lockStore           redis.LockStoreInterface
	notificationService *NotificationService
}

// NewRewardService creates a new RewardService.
func NewRewardService(
	db *sql.DB,
	rewardRepo repository.RewardRepository,
	userRepo repository.UserRepository,
	lockStore redis.LockStoreInterface,
	notificationService *NotificationService,
) *RewardService {
	return &RewardService{
		db:                  db,
		rewardRepo:          rewardRepo,
		userRepo:            userRepo,
		lockStore:           lockStore,
		notificationService: notificationService,
	}
}

// List retrieves the available reward catalogue.
func (s *RewardService) List(ctx context.Context) ([]*domain.Reward, error) {
	return s.rewardRepo.ListAvailable(ctx)
}

// RedeemResponse contains the recorded redemption and the debited account.
type RedeemResponse struct {
	Redemption *domain.Redemption
	Account    *domain.User
}

// Redeem exchanges taubits for a catalogue reward. The balance check and
// the debit happen on a locked row so two concurrent redemptions cannot
// both spend the same points.
func (s *RewardService) Redeem(ctx context.Context, userID, rewardID string) (*RedeemResponse, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if rewardID == "" {
		return nil, ErrInvalidRewardID
	}

	locked, err := s.lockStore.AcquireAccountLock(ctx, userID, accountLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrAccountBusy
	}
	defer s.lockStore.ReleaseAccountLock(ctx, userID)

	reward, err := s.rewardRepo.GetByID(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	if !reward.IsAvailable {
		return nil, ErrRewardUnavailable
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txUserRepo := postgres.NewUserRepositoryWithTx(tx)
	txRewardRepo := postgres.NewRewardRepositoryWithTx(tx)

	user, err := txUserRepo.GetByIDForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if reward.IsPremium && !user.IsPremium {
		err = ErrPremiumRequired
		return nil, err
	}
	if user.Points < reward.PointsCost {
		err = ErrInsufficientPoints
		return nil, err
	}

	user.Points -= reward.PointsCost
	if err = txUserRepo.UpdateStats(ctx, user); err != nil {
		return nil, err
	}

	redemption := &domain.Redemption{
		ID:         uuid.New().String(),
		UserID:     userID,
		RewardID:   rewardID,
		RedeemedAt: time.Now(),
		Status:     domain.RedemptionStatusActive,
		RewardName: reward.Name,
		PointsCost: reward.PointsCost,
	}
	if err = txRewardRepo.CreateRedemption(ctx, redemption); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyRewardRedeemed(ctx, userID, reward.Name, user.Points)
	}

	return &RedeemResponse{Redemption: redemption, Account: user}, nil
}

// History retrieves the user's past redemptions, newest first.
func (s *RewardService) History(ctx context.Context, userID string) ([]*domain.Redemption, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.rewardRepo.ListRedemptionsByUser(ctx, userID)
}
