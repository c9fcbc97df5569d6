// Package rewards is the pure domain engine for the taubit economy: trip
// distance estimation, point calculation, experience/level progression, line
// rating aggregation, and account settlement. Functions here perform no I/O
// and hold no state; persistence is the caller's responsibility.
package rewards

import (
	"math"

	"taubit/internal/domain"
)

// kmPerDegree is the rough km-per-degree conversion at the equator. The
// planar approximation is kept for compatibility with the existing point
// tariff; it is not geodesically correct near the poles or over large spans.
const kmPerDegree = 111.0

// fallbackLocation substitutes for a missing coordinate (downtown Toronto).
var fallbackLocation = domain.LatLng{Lat: 43.6532, Lng: -79.3832}

// EstimateDistanceKm returns the planar Euclidean distance between two
// coordinates, treating degrees as a flat Cartesian plane. A missing
// coordinate falls back to a fixed default rather than failing the trip.
func EstimateDistanceKm(start, end domain.LatLng) float64 {
	if start.IsZero() {
		start = fallbackLocation
	}
	if end.IsZero() {
		end = fallbackLocation
	}

	dLat := end.Lat - start.Lat
	dLng := end.Lng - start.Lng

	return math.Sqrt(dLat*dLat+dLng*dLng) * kmPerDegree
}
