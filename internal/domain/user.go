package domain

import "time"

// User represents a rider account in the system.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Avatar       string

	// Cumulative stats, mutated only by trip settlement and reward redemption.
	Points           int
	WeeklyPoints     int
	Experience       int
	Level            int
	TotalTrips       int
	TotalDistanceKm  float64
	TotalTimeMinutes float64

	IsPremium     bool
	PremiumExpiry time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
