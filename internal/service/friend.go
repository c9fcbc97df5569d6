package service

import (
	"context"

	"github.com/google/uuid"

	"taubit/internal/domain"
	"taubit/internal/repository"
)

// FriendService handles friend requests and friend listings.
type FriendService struct {
	userRepo            repository.UserRepository
	friendRepo          repository.FriendRepository
	notificationService *NotificationService
}

// NewFriendService creates a new FriendService.
func NewFriendService(userRepo repository.UserRepository, friendRepo repository.FriendRepository, notificationService *NotificationService) *FriendService {
	return &FriendService{
		userRepo:            userRepo,
		friendRepo:          friendRepo,
		notificationService: notificationService,
	}
}

// Request sends a friend request from userID to friendID.
func (s *FriendService) Request(ctx context.Context, userID, friendID string) (*domain.Friendship, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if friendID == "" || friendID == userID {
		return nil, ErrCannotFriendSelf
	}

	requester, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Target must exist.
	if _, err := s.userRepo.GetByID(ctx, friendID); err != nil {
		return nil, err
	}

	// One friendship per pair, regardless of direction.
	existing, err := s.friendRepo.GetPair(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrFriendRequestExists
	}

	friendship := &domain.Friendship{
		ID:       uuid.New().String(),
		UserID:   userID,
		FriendID: friendID,
		Status:   domain.FriendStatusPending,
	}
	if err := s.friendRepo.Create(ctx, friendship); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyFriendRequest(ctx, friendID, requester.Name)
	}

	return friendship, nil
}

// Accept accepts a pending friend request addressed to userID.
func (s *FriendService) Accept(ctx context.Context, userID, friendID string) (*domain.Friendship, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	friendship, err := s.friendRepo.GetPair(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}

	// Only the addressee of a pending request can accept it.
	if friendship == nil || friendship.Status != domain.FriendStatusPending || friendship.FriendID != userID {
		return nil, ErrFriendRequestNotPending
	}

	if err := s.friendRepo.UpdateStatus(ctx, friendship.ID, domain.FriendStatusAccepted); err != nil {
		return nil, err
	}
	friendship.Status = domain.FriendStatusAccepted

	if s.notificationService != nil {
		accepterName := userID
		if accepter, err := s.userRepo.GetByID(ctx, userID); err == nil {
			accepterName = accepter.Name
		}
		_ = s.notificationService.NotifyFriendAccepted(ctx, friendship.UserID, accepterName)
	}

	return friendship, nil
}

// List retrieves the user's accepted friends.
func (s *FriendService) List(ctx context.Context, userID string) ([]*domain.Friendship, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.friendRepo.ListByUser(ctx, userID, domain.FriendStatusAccepted)
}

// Pending retrieves friend requests awaiting the user's response.
func (s *FriendService) Pending(ctx context.Context, userID string) ([]*domain.Friendship, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.friendRepo.ListByUser(ctx, userID, domain.FriendStatusPending)
}
