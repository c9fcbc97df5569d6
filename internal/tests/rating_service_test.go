package tests

import (
	"context"
	"errors"
	"testing"

	"taubit/internal/domain"
	"taubit/internal/repository"
	"taubit/internal/rewards"
	"taubit/internal/service"
)

// ──────────────────────────────────────────────
// LINE RATING EDGE CASES
// ──────────────────────────────────────────────

func seededLine() *domain.TransitLine {
	return &domain.TransitLine{
		ID:            "line-1",
		Name:          "501 Queen",
		Type:          domain.LineTypeStreetcar,
		AverageRating: 4.2,
		RatingCount:   156,
		Reliability:   85,
		NoiseLevel:    domain.CrowdLevelMedium,
		Occupancy:     domain.CrowdLevelHigh,
		Status:        domain.LineStatusActive,
	}
}

func TestRateLine_UpdatesRunningAverage(t *testing.T) {
	t.Parallel()

	lineRepo := NewMockLineRepository()
	lineRepo.AddLine(seededLine())

	svc := service.NewRatingService(lineRepo, NewMockLockStore(), nil)

	line, err := svc.RateLine(context.Background(), service.RateLineRequest{
		LineID: "line-1",
		Rating: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := (4.2*156 + 5) / 157
	if line.AverageRating != want {
		t.Errorf("expected average %v, got %v", want, line.AverageRating)
	}
	if line.RatingCount != 157 {
		t.Errorf("expected count 157, got %d", line.RatingCount)
	}
	// A 5 lifts reliability by 2.
	if line.Reliability != 87 {
		t.Errorf("expected reliability 87, got %d", line.Reliability)
	}

	stored := lineRepo.GetLine("line-1")
	if stored.RatingCount != 157 {
		t.Errorf("expected persisted count 157, got %d", stored.RatingCount)
	}
}

func TestRateLine_LowRatingDropsReliability(t *testing.T) {
	t.Parallel()

	lineRepo := NewMockLineRepository()
	lineRepo.AddLine(seededLine())

	svc := service.NewRatingService(lineRepo, NewMockLockStore(), nil)

	line, err := svc.RateLine(context.Background(), service.RateLineRequest{
		LineID: "line-1",
		Rating: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if line.Reliability != 82 {
		t.Errorf("expected reliability 82, got %d", line.Reliability)
	}
}

func TestRateLine_NeutralRatingLeavesReliability(t *testing.T) {
	t.Parallel()

	lineRepo := NewMockLineRepository()
	lineRepo.AddLine(seededLine())

	svc := service.NewRatingService(lineRepo, NewMockLockStore(), nil)

	line, err := svc.RateLine(context.Background(), service.RateLineRequest{
		LineID: "line-1",
		Rating: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if line.Reliability != 85 {
		t.Errorf("expected reliability unchanged at 85, got %d", line.Reliability)
	}
	if line.RatingCount != 157 {
		t.Errorf("expected count 157, got %d", line.RatingCount)
	}
}

func TestRateLine_OutOfRangeRejected(t *testing.T) {
	t.Parallel()

	lineRepo := NewMockLineRepository()
	lineRepo.AddLine(seededLine())

	svc := service.NewRatingService(lineRepo, NewMockLockStore(), nil)

	for _, rating := range []int{0, 6, -1, 100} {
		_, err := svc.RateLine(context.Background(), service.RateLineRequest{
			LineID: "line-1",
			Rating: rating,
		})
		if !errors.Is(err, rewards.ErrInvalidRating) {
			t.Errorf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}

	// Nothing persisted.
	stored := lineRepo.GetLine("line-1")
	if stored.RatingCount != 156 {
		t.Errorf("expected count unchanged at 156, got %d", stored.RatingCount)
	}
}

func TestRateLine_UnknownLine(t *testing.T) {
	t.Parallel()

	svc := service.NewRatingService(NewMockLineRepository(), NewMockLockStore(), nil)

	_, err := svc.RateLine(context.Background(), service.RateLineRequest{
		LineID: "no-such-line",
		Rating: 4,
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRateLine_LineLockHeldRejected(t *testing.T) {
	t.Parallel()

	lineRepo := NewMockLineRepository()
	lineRepo.AddLine(seededLine())

	lockStore := NewMockLockStore()
	lockStore.HoldLineLock("line-1")

	svc := service.NewRatingService(lineRepo, lockStore, nil)

	_, err := svc.RateLine(context.Background(), service.RateLineRequest{
		LineID: "line-1",
		Rating: 4,
	})
	if !errors.Is(err, service.ErrLineBusy) {
		t.Errorf("expected ErrLineBusy, got %v", err)
	}
}

func TestRateLine_DefaultsNoiseAndOccupancy(t *testing.T) {
	t.Parallel()

	lineRepo := NewMockLineRepository()
	line := seededLine()
	line.NoiseLevel = domain.CrowdLevelLow
	line.Occupancy = domain.CrowdLevelLow
	lineRepo.AddLine(line)

	svc := service.NewRatingService(lineRepo, NewMockLockStore(), nil)

	rated, err := svc.RateLine(context.Background(), service.RateLineRequest{
		LineID: "line-1",
		Rating: 4,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Omitted conditions overwrite with medium, last write wins.
	if rated.NoiseLevel != domain.CrowdLevelMedium {
		t.Errorf("expected medium noise, got %s", rated.NoiseLevel)
	}
	if rated.Occupancy != domain.CrowdLevelMedium {
		t.Errorf("expected medium occupancy, got %s", rated.Occupancy)
	}
}

func TestListLines_Filtering(t *testing.T) {
	t.Parallel()

	lineRepo := NewMockLineRepository()
	lineRepo.AddLine(&domain.TransitLine{ID: "l1", Name: "1 Yonge-University", Type: domain.LineTypeSubway, Status: domain.LineStatusActive})
	lineRepo.AddLine(&domain.TransitLine{ID: "l2", Name: "25 Don Mills", Type: domain.LineTypeBus, Status: domain.LineStatusActive})
	lineRepo.AddLine(&domain.TransitLine{ID: "l3", Name: "501 Queen", Type: domain.LineTypeStreetcar, Status: domain.LineStatusInactive})

	svc := service.NewRatingService(lineRepo, NewMockLockStore(), nil)

	all, err := svc.ListLines(context.Background(), repository.LineFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 lines, got %d", len(all))
	}

	buses, err := svc.ListLines(context.Background(), repository.LineFilter{Type: domain.LineTypeBus})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buses) != 1 || buses[0].ID != "l2" {
		t.Errorf("expected only l2, got %v", buses)
	}

	active, err := svc.ListLines(context.Background(), repository.LineFilter{Status: domain.LineStatusActive})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("expected 2 active lines, got %d", len(active))
	}
}
