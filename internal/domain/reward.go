package domain

import "time"

// Reward represents a redeemable catalogue item.
type Reward struct {
	ID          string
	Name        string
	Description string
	PointsCost  int
	Category    string
	IsPremium   bool // redeemable by premium accounts only
	IsAvailable bool
	ImageURL    string
	CreatedAt   time.Time
}

// RedemptionStatus represents the status of a redeemed reward.
type RedemptionStatus string

const (
	RedemptionStatusActive RedemptionStatus = "active"
	RedemptionStatusUsed   RedemptionStatus = "used"
)

// Redemption records a user redeeming a reward.
type Redemption struct {
	ID         string
	UserID     string
	RewardID   string
	RedeemedAt time.Time
	Status     RedemptionStatus

	// Joined from rewards for listings.
	RewardName string
	PointsCost int
}
