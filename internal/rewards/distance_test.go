package rewards

import (
	"math"
	"testing"

	"taubit/internal/domain"
)

func TestEstimateDistanceKm(t *testing.T) {
	t.Parallel()

	start := domain.LatLng{Lat: 43.6532, Lng: -79.3832}
	end := domain.LatLng{Lat: 43.6500, Lng: -79.3800}

	got := EstimateDistanceKm(start, end)

	dLat := end.Lat - start.Lat
	dLng := end.Lng - start.Lng
	want := math.Sqrt(dLat*dLat+dLng*dLng) * 111.0

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("EstimateDistanceKm = %v, want %v", got, want)
	}
	if got < 0 {
		t.Errorf("distance must be non-negative, got %v", got)
	}
}

func TestEstimateDistanceKm_Symmetric(t *testing.T) {
	t.Parallel()

	a := domain.LatLng{Lat: 43.70, Lng: -79.40}
	b := domain.LatLng{Lat: 43.65, Lng: -79.38}

	if d1, d2 := EstimateDistanceKm(a, b), EstimateDistanceKm(b, a); d1 != d2 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestEstimateDistanceKm_MissingCoordinateFallsBack(t *testing.T) {
	t.Parallel()

	end := domain.LatLng{Lat: 43.6500, Lng: -79.3800}

	// A zero-value start substitutes the documented default instead of
	// producing a trip that spans half the planet.
	got := EstimateDistanceKm(domain.LatLng{}, end)
	want := EstimateDistanceKm(domain.LatLng{Lat: 43.6532, Lng: -79.3832}, end)

	if got != want {
		t.Errorf("fallback distance = %v, want %v", got, want)
	}

	// Both missing collapses to zero distance.
	if d := EstimateDistanceKm(domain.LatLng{}, domain.LatLng{}); d != 0 {
		t.Errorf("expected 0 for two missing coordinates, got %v", d)
	}
}
