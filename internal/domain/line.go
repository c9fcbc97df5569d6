package domain

import "time"

// LineType represents the vehicle type of a transit line.
type LineType string

const (
	LineTypeBus       LineType = "bus"
	LineTypeSubway    LineType = "subway"
	LineTypeStreetcar LineType = "streetcar"
)

// LineStatus represents whether a line is in service.
type LineStatus string

const (
	LineStatusActive   LineStatus = "active"
	LineStatusInactive LineStatus = "inactive"
)

// CrowdLevel is a coarse low/medium/high scale used for noise and occupancy.
type CrowdLevel string

const (
	CrowdLevelLow    CrowdLevel = "low"
	CrowdLevelMedium CrowdLevel = "medium"
	CrowdLevelHigh   CrowdLevel = "high"
)

// TransitLine represents a rateable transit line.
type TransitLine struct {
	ID   string
	Name string
	Type LineType

	// Rating state, mutated only by the rating aggregator.
	AverageRating float64
	RatingCount   int
	Reliability   int

	// Last-write-wins rider observations.
	NoiseLevel CrowdLevel
	Occupancy  CrowdLevel

	Status    LineStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
