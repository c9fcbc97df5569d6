package rewards

import (
	"errors"

	"taubit/internal/domain"
)

// ErrInvalidRating is returned when a rating falls outside [1,5].
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Reliability bounds. Reliability drifts with ratings but never leaves
// this range.
const (
	ReliabilityFloor   = 60
	ReliabilityCeiling = 100
)

// RatingState is the aggregated rating state of a transit line.
type RatingState struct {
	AverageRating float64
	RatingCount   int
	Reliability   int
	NoiseLevel    domain.CrowdLevel
	Occupancy     domain.CrowdLevel
}

// ApplyRating folds one rider rating into the line's state. The average is
// an exact weighted running mean. Reliability moves +2 for ratings of 4 or
// 5, -3 for 1 or 2, and is left unchanged for a neutral 3, then clamps to
// [ReliabilityFloor, ReliabilityCeiling]. Noise and occupancy are replaced
// outright with the submitted values. The input state is not mutated.
func ApplyRating(state RatingState, rating int, noise, occupancy domain.CrowdLevel) (RatingState, error) {
	if rating < 1 || rating > 5 {
		return state, ErrInvalidRating
	}

	newCount := state.RatingCount + 1
	state.AverageRating = (state.AverageRating*float64(state.RatingCount) + float64(rating)) / float64(newCount)
	state.RatingCount = newCount

	switch {
	case rating >= 4:
		state.Reliability += 2
	case rating <= 2:
		state.Reliability -= 3
	}
	if state.Reliability > ReliabilityCeiling {
		state.Reliability = ReliabilityCeiling
	}
	if state.Reliability < ReliabilityFloor {
		state.Reliability = ReliabilityFloor
	}

	state.NoiseLevel = noise
	state.Occupancy = occupancy

	return state, nil
}
