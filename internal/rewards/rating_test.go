package rewards

import (
	"errors"
	"math"
	"testing"

	"taubit/internal/domain"
)

func TestApplyRating_RunningAverage(t *testing.T) {
	t.Parallel()

	state := RatingState{Reliability: 80}

	for _, r := range []int{5, 3, 4} {
		var err error
		state, err = ApplyRating(state, r, domain.CrowdLevelMedium, domain.CrowdLevelMedium)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if state.RatingCount != 3 {
		t.Errorf("count = %d, want 3", state.RatingCount)
	}
	if math.Abs(state.AverageRating-4.0) > 1e-9 {
		t.Errorf("average = %v, want 4.0", state.AverageRating)
	}
}

func TestApplyRating_SeededAverage(t *testing.T) {
	t.Parallel()

	// A line with existing ratings weights the new rating correctly.
	state := RatingState{AverageRating: 4.2, RatingCount: 156, Reliability: 85}

	state, err := ApplyRating(state, 1, domain.CrowdLevelHigh, domain.CrowdLevelHigh)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := (4.2*156 + 1) / 157
	if math.Abs(state.AverageRating-want) > 1e-9 {
		t.Errorf("average = %v, want %v", state.AverageRating, want)
	}
}

func TestApplyRating_ReliabilityDeltas(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		rating int
		want   int
	}{
		{"five raises by two", 5, 82},
		{"four raises by two", 4, 82},
		{"three leaves unchanged", 3, 80},
		{"two lowers by three", 2, 77},
		{"one lowers by three", 1, 77},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			state := RatingState{Reliability: 80}
			state, err := ApplyRating(state, tc.rating, domain.CrowdLevelMedium, domain.CrowdLevelMedium)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if state.Reliability != tc.want {
				t.Errorf("reliability = %d, want %d", state.Reliability, tc.want)
			}
		})
	}
}

func TestApplyRating_ReliabilityClamps(t *testing.T) {
	t.Parallel()

	state := RatingState{Reliability: 98}
	for i := 0; i < 50; i++ {
		var err error
		state, err = ApplyRating(state, 5, domain.CrowdLevelLow, domain.CrowdLevelLow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.Reliability > ReliabilityCeiling {
			t.Fatalf("reliability %d exceeded ceiling", state.Reliability)
		}
	}
	if state.Reliability != ReliabilityCeiling {
		t.Errorf("reliability = %d, want pinned at %d", state.Reliability, ReliabilityCeiling)
	}

	for i := 0; i < 50; i++ {
		var err error
		state, err = ApplyRating(state, 1, domain.CrowdLevelHigh, domain.CrowdLevelHigh)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.Reliability < ReliabilityFloor {
			t.Fatalf("reliability %d dropped below floor", state.Reliability)
		}
	}
	if state.Reliability != ReliabilityFloor {
		t.Errorf("reliability = %d, want pinned at %d", state.Reliability, ReliabilityFloor)
	}
}

func TestApplyRating_RejectsOutOfRange(t *testing.T) {
	t.Parallel()

	original := RatingState{AverageRating: 4.0, RatingCount: 10, Reliability: 80}

	for _, r := range []int{0, -1, 6, 100} {
		state, err := ApplyRating(original, r, domain.CrowdLevelMedium, domain.CrowdLevelMedium)
		if !errors.Is(err, ErrInvalidRating) {
			t.Errorf("rating %d: expected ErrInvalidRating, got %v", r, err)
		}
		if state != original {
			t.Errorf("rating %d: state mutated on rejection", r)
		}
	}
}

func TestApplyRating_ObservationsLastWriteWins(t *testing.T) {
	t.Parallel()

	state := RatingState{Reliability: 80, NoiseLevel: domain.CrowdLevelLow, Occupancy: domain.CrowdLevelLow}

	state, err := ApplyRating(state, 4, domain.CrowdLevelHigh, domain.CrowdLevelMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.NoiseLevel != domain.CrowdLevelHigh {
		t.Errorf("noise = %s, want high", state.NoiseLevel)
	}
	if state.Occupancy != domain.CrowdLevelMedium {
		t.Errorf("occupancy = %s, want medium", state.Occupancy)
	}
}
