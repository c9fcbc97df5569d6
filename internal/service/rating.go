package service

import (
	"context"
	"time"

	"taubit/internal/domain"
	"taubit/internal/redis"
	"taubit/internal/repository"
	"taubit/internal/rewards"
)

const lineLockTTL = 5 * time.Second

// RatingService handles line ratings and line lookups.
type RatingService struct {
	lineRepo   repository.LineRepository
	lockStore  redis.LockStoreInterface
	cacheStore *redis.CacheStore
}

// NewRatingService creates a new RatingService.
func NewRatingService(lineRepo repository.LineRepository, lockStore redis.LockStoreInterface, cacheStore *redis.CacheStore) *RatingService {
	return &RatingService{
		lineRepo:   lineRepo,
		lockStore:  lockStore,
		cacheStore: cacheStore,
	}
}

// RateLineRequest contains the parameters for rating a line.
type RateLineRequest struct {
	LineID     string
	Rating     int
	NoiseLevel domain.CrowdLevel
	Occupancy  domain.CrowdLevel
}

// RateLine folds one rider's rating into the line's running average and
// reliability. Ratings for the same line serialize on the line lock so
// concurrent submissions never drop a count.
func (s *RatingService) RateLine(ctx context.Context, req RateLineRequest) (*domain.TransitLine, error) {
	if req.LineID == "" {
		return nil, ErrInvalidLineID
	}
	if req.NoiseLevel == "" {
		req.NoiseLevel = domain.CrowdLevelMedium
	}
	if req.Occupancy == "" {
		req.Occupancy = domain.CrowdLevelMedium
	}

	locked, err := s.lockStore.AcquireLineLock(ctx, req.LineID, lineLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrLineBusy
	}
	defer s.lockStore.ReleaseLineLock(ctx, req.LineID)

	line, err := s.lineRepo.GetByID(ctx, req.LineID)
	if err != nil {
		return nil, err
	}

	state, err := rewards.ApplyRating(rewards.RatingState{
		AverageRating: line.AverageRating,
		RatingCount:   line.RatingCount,
		Reliability:   line.Reliability,
		NoiseLevel:    line.NoiseLevel,
		Occupancy:     line.Occupancy,
	}, req.Rating, req.NoiseLevel, req.Occupancy)
	if err != nil {
		return nil, err
	}

	line.AverageRating = state.AverageRating
	line.RatingCount = state.RatingCount
	line.Reliability = state.Reliability
	line.NoiseLevel = state.NoiseLevel
	line.Occupancy = state.Occupancy

	if err := s.lineRepo.UpdateRating(ctx, line); err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateLines(ctx)
	}

	return line, nil
}

// GetLine retrieves a single transit line.
func (s *RatingService) GetLine(ctx context.Context, lineID string) (*domain.TransitLine, error) {
	if lineID == "" {
		return nil, ErrInvalidLineID
	}
	return s.lineRepo.GetByID(ctx, lineID)
}

// ListLines retrieves transit lines matching the filter, cached briefly
// since the list is read on every map load.
func (s *RatingService) ListLines(ctx context.Context, filter repository.LineFilter) ([]*domain.TransitLine, error) {
	filterKey := string(filter.Type) + ":" + string(filter.Status)

	if s.cacheStore != nil {
		if cached, err := s.cacheStore.GetLines(ctx, filterKey); err == nil && cached != nil {
			lines := make([]*domain.TransitLine, 0, len(cached))
			for _, cl := range cached {
				lines = append(lines, cl.ToDomain())
			}
			return lines, nil
		}
	}

	lines, err := s.lineRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		cached := make([]redis.CachedLine, 0, len(lines))
		for _, l := range lines {
			cached = append(cached, redis.CachedLineFrom(l))
		}
		_ = s.cacheStore.SetLines(ctx, filterKey, cached)
	}

	return lines, nil
}
