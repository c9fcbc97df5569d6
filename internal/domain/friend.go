package domain

import "time"

// FriendStatus represents the state of a friend request.
type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "pending"
	FriendStatusAccepted FriendStatus = "accepted"
)

// Friendship is a directed friend request from UserID to FriendID.
type Friendship struct {
	ID        string
	UserID    string
	FriendID  string
	Status    FriendStatus
	CreatedAt time.Time

	// Joined from users for listings.
	FriendName   string
	FriendAvatar string
}
