package service

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/google/uuid"

	"taubit/internal/domain"
	"taubit/internal/redis"
	"taubit/internal/repository"
	"taubit/internal/repository/postgres"
	"taubit/internal/rewards"
)

// accountLockTTL bounds how long a settlement can hold the account lock.
// The row lock inside the transaction still protects against lost updates
// if the Redis lease expires mid-settlement.
const accountLockTTL = 10 * time.Second

// TripService handles the tap-in/tap-out trip lifecycle and settlement.
type TripService struct {
	db                  *sql.DB
	tripRepo            repository.TripRepository
	userRepo            repository.UserRepository
	lineRepo            repository.LineRepository
	lockStore           redis.LockStoreInterface
	leaderboard         redis.LeaderboardStoreInterface
	notificationService *NotificationService
}

// NewTripService creates a new TripService.
func NewTripService(
	db *sql.DB,
	tripRepo repository.TripRepository,
	userRepo repository.UserRepository,
	lineRepo repository.LineRepository,
	lockStore redis.LockStoreInterface,
	leaderboard redis.LeaderboardStoreInterface,
	notificationService *NotificationService,
) *TripService {
	return &TripService{
		db:                  db,
		tripRepo:            tripRepo,
		userRepo:            userRepo,
		lineRepo:            lineRepo,
		lockStore:           lockStore,
		leaderboard:         leaderboard,
		notificationService: notificationService,
	}
}

// StartTripRequest contains the parameters for starting a trip.
type StartTripRequest struct {
	UserID        string
	TransitLineID string
	StartLocation domain.LatLng
}

// StartTrip taps the user in. A user has at most one active trip.
func (s *TripService) StartTrip(ctx context.Context, req StartTripRequest) (*domain.Trip, error) {
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}

	// Check if the user already has an active trip.
	existing, err := s.tripRepo.GetActiveByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateActiveTrip
	}

	// Verify the line exists when one was picked.
	if req.TransitLineID != "" {
		if _, err := s.lineRepo.GetByID(ctx, req.TransitLineID); err != nil {
			return nil, err
		}
	}

	trip := &domain.Trip{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		TransitLineID: req.TransitLineID,
		StartTime:     time.Now(),
		StartLocation: req.StartLocation,
		Status:        domain.TripStatusActive,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

// EndTripRequest contains the parameters for ending a trip.
type EndTripRequest struct {
	UserID      string
	EndLocation domain.LatLng
}

// EndTripResponse contains the completed trip and the settled account.
type EndTripResponse struct {
	Trip        *domain.Trip
	Account     *domain.User
	Progression rewards.Progression
}

// EndTrip taps the user out: estimates distance, computes earned taubits,
// and settles the account. The trip update and the stat update commit in
// one transaction; concurrent settlements for the same account serialize
// on the account lock plus a row lock.
func (s *TripService) EndTrip(ctx context.Context, req EndTripRequest) (*EndTripResponse, error) {
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}

	// Single writer per account.
	locked, err := s.lockStore.AcquireAccountLock(ctx, req.UserID, accountLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrAccountBusy
	}
	defer s.lockStore.ReleaseAccountLock(ctx, req.UserID)

	trip, err := s.tripRepo.GetActiveByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrNoActiveTrip
	}

	endTime := time.Now()
	duration := math.Floor(endTime.Sub(trip.StartTime).Minutes())
	distance := rewards.EstimateDistanceKm(trip.StartLocation, req.EndLocation)
	pointsEarned := rewards.ComputePoints(distance, duration)

	trip.EndTime = endTime
	trip.EndLocation = req.EndLocation
	trip.DistanceKm = distance
	trip.DurationMinutes = duration
	trip.PointsEarned = pointsEarned
	trip.Status = domain.TripStatusCompleted

	// Settle trip and account atomically.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTripRepo := postgres.NewTripRepositoryWithTx(tx)
	txUserRepo := postgres.NewUserRepositoryWithTx(tx)

	if err = txTripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	user, err := txUserRepo.GetByIDForUpdate(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	settlement := rewards.SettleTrip(rewards.AccountState{
		Points:           user.Points,
		WeeklyPoints:     user.WeeklyPoints,
		Experience:       user.Experience,
		Level:            user.Level,
		TotalTrips:       user.TotalTrips,
		TotalDistanceKm:  user.TotalDistanceKm,
		TotalTimeMinutes: user.TotalTimeMinutes,
		Premium:          user.IsPremium,
	}, pointsEarned, distance, duration)

	user.Points = settlement.Account.Points
	user.WeeklyPoints = settlement.Account.WeeklyPoints
	user.Experience = settlement.Account.Experience
	user.Level = settlement.Account.Level
	user.TotalTrips = settlement.Account.TotalTrips
	user.TotalDistanceKm = settlement.Account.TotalDistanceKm
	user.TotalTimeMinutes = settlement.Account.TotalTimeMinutes

	if err = txUserRepo.UpdateStats(ctx, user); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	// Leaderboard and notifications are best-effort after the commit.
	if s.leaderboard != nil {
		_ = s.leaderboard.AddPoints(ctx, req.UserID, pointsEarned, endTime)
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyTripEnded(ctx, trip)
		if settlement.Progression.LeveledUp {
			_ = s.notificationService.NotifyLevelUp(ctx, req.UserID, settlement.Progression.Level)
		}
	}

	return &EndTripResponse{
		Trip:        trip,
		Account:     user,
		Progression: settlement.Progression,
	}, nil
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, repository.ErrNotFound
	}
	return s.tripRepo.GetByID(ctx, tripID)
}

// TripPage is one page of a user's trip history.
type TripPage struct {
	Trips []*domain.Trip
	Page  int
	Limit int
	Total int
	Pages int
}

// ListTrips retrieves a page of the user's trip history, newest first.
func (s *TripService) ListTrips(ctx context.Context, userID string, page, limit int) (*TripPage, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	trips, err := s.tripRepo.ListByUserID(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	total, err := s.tripRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	pages := (total + limit - 1) / limit

	return &TripPage{
		Trips: trips,
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}, nil
}
