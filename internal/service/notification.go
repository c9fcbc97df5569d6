package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"taubit/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationTripEnded      NotificationType = "TRIP_ENDED"
	NotificationLevelUp        NotificationType = "LEVEL_UP"
	NotificationRewardRedeemed NotificationType = "REWARD_REDEEMED"
	NotificationFriendRequest  NotificationType = "FRIEND_REQUEST"
	NotificationFriendAccepted NotificationType = "FRIEND_ACCEPTED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]any
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM, APNS)
	// - Email client
	// - WebSocket connections for real-time
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyTripEnded tells the rider how many taubits the trip earned.
func (s *NotificationService) NotifyTripEnded(ctx context.Context, trip *domain.Trip) error {
	s.send(ctx, Notification{
		Type:        NotificationTripEnded,
		RecipientID: trip.UserID,
		Title:       "Trip Complete",
		Message:     fmt.Sprintf("You earned %d taubits for a %.2f km trip.", trip.PointsEarned, trip.DistanceKm),
		Data: map[string]any{
			"trip_id":       trip.ID,
			"points_earned": trip.PointsEarned,
			"distance_km":   trip.DistanceKm,
		},
		CreatedAt: time.Now(),
	})
	return nil
}

// NotifyLevelUp congratulates the rider on reaching a new level.
func (s *NotificationService) NotifyLevelUp(ctx context.Context, userID string, newLevel int) error {
	s.send(ctx, Notification{
		Type:        NotificationLevelUp,
		RecipientID: userID,
		Title:       "Level Up!",
		Message:     fmt.Sprintf("You reached level %d.", newLevel),
		Data:        map[string]any{"level": newLevel},
		CreatedAt:   time.Now(),
	})
	return nil
}

// NotifyRewardRedeemed confirms a redemption and the remaining balance.
func (s *NotificationService) NotifyRewardRedeemed(ctx context.Context, userID, rewardName string, remainingPoints int) error {
	s.send(ctx, Notification{
		Type:        NotificationRewardRedeemed,
		RecipientID: userID,
		Title:       "Reward Redeemed",
		Message:     fmt.Sprintf("You redeemed %s. %d taubits remaining.", rewardName, remainingPoints),
		Data:        map[string]any{"reward": rewardName, "remaining_points": remainingPoints},
		CreatedAt:   time.Now(),
	})
	return nil
}

// NotifyFriendRequest tells a user someone wants to be their friend.
func (s *NotificationService) NotifyFriendRequest(ctx context.Context, recipientID, requesterName string) error {
	s.send(ctx, Notification{
		Type:        NotificationFriendRequest,
		RecipientID: recipientID,
		Title:       "Friend Request",
		Message:     fmt.Sprintf("%s sent you a friend request.", requesterName),
		CreatedAt:   time.Now(),
	})
	return nil
}

// NotifyFriendAccepted tells the requester their request was accepted.
func (s *NotificationService) NotifyFriendAccepted(ctx context.Context, recipientID, accepterName string) error {
	s.send(ctx, Notification{
		Type:        NotificationFriendAccepted,
		RecipientID: recipientID,
		Title:       "Friend Request Accepted",
		Message:     fmt.Sprintf("%s accepted your friend request.", accepterName),
		CreatedAt:   time.Now(),
	})
	return nil
}

// send delivers a notification. Currently logs; swap for a real push
// provider when one exists.
func (s *NotificationService) send(_ context.Context, n Notification) {
	log.Printf("[notification] type=%s recipient=%s message=%q", n.Type, n.RecipientID, n.Message)
}
