package rewards

import "math"

// Tariff: each kilometre earns 10 taubits, each minute earns 10 taubits.
const (
	pointsPerKm     = 10
	pointsPerMinute = 10
)

// ComputePoints converts trip distance and duration into earned taubits.
// Each component is floored independently before summing; the ordering
// matters at boundaries (distance=0.15, duration=0 yields floor(1.5)=1,
// not floor of the combined sum). Negative inputs clamp to zero.
func ComputePoints(distanceKm, durationMinutes float64) int {
	if distanceKm < 0 {
		distanceKm = 0
	}
	if durationMinutes < 0 {
		durationMinutes = 0
	}

	return int(math.Floor(distanceKm*pointsPerKm)) + int(math.Floor(durationMinutes*pointsPerMinute))
}
