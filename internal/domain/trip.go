package domain

import "time"

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
)

// LatLng is a geographic coordinate pair in decimal degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// IsZero reports whether the coordinate was never set.
func (l LatLng) IsZero() bool {
	return l.Lat == 0 && l.Lng == 0
}

// Trip represents an active or completed transit trip.
// A user has at most one active trip at a time; completed trips are immutable.
type Trip struct {
	ID            string
	UserID        string
	TransitLineID string // empty when the rider did not pick a line

	StartTime     time.Time
	EndTime       time.Time // zero while active
	StartLocation LatLng
	EndLocation   LatLng

	DistanceKm      float64
	DurationMinutes float64
	PointsEarned    int
	Status          TripStatus

	// Joined from transit_lines for history listings.
	TransitLineName string
	TransitLineType LineType

	CreatedAt time.Time
}
