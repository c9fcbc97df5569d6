package domain

import "time"

// Session tracks an issued access token so logout can revoke it.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
