package tests

import (
	"context"
	"errors"
	"testing"

	"taubit/internal/domain"
	"taubit/internal/repository"
	"taubit/internal/service"
)

// ──────────────────────────────────────────────
// FRIENDSHIP EDGE CASES
// ──────────────────────────────────────────────

func twoUsers() *MockUserRepository {
	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{ID: "user-1", Email: "one@example.com", Name: "One"})
	userRepo.AddUser(&domain.User{ID: "user-2", Email: "two@example.com", Name: "Two"})
	return userRepo
}

func TestFriendRequest_RoundTrip(t *testing.T) {
	t.Parallel()

	friendRepo := NewMockFriendRepository()
	svc := service.NewFriendService(twoUsers(), friendRepo, nil)

	f, err := svc.Request(context.Background(), "user-1", "user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Status != domain.FriendStatusPending {
		t.Errorf("expected pending, got %s", f.Status)
	}

	accepted, err := svc.Accept(context.Background(), "user-2", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accepted.Status != domain.FriendStatusAccepted {
		t.Errorf("expected accepted, got %s", accepted.Status)
	}

	// Both sides now list the friendship.
	for _, userID := range []string{"user-1", "user-2"} {
		friends, err := svc.List(context.Background(), userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(friends) != 1 {
			t.Errorf("%s: expected 1 friend, got %d", userID, len(friends))
		}
	}
}

func TestFriendRequest_SelfRejected(t *testing.T) {
	t.Parallel()

	svc := service.NewFriendService(twoUsers(), NewMockFriendRepository(), nil)

	_, err := svc.Request(context.Background(), "user-1", "user-1")
	if !errors.Is(err, service.ErrCannotFriendSelf) {
		t.Errorf("expected ErrCannotFriendSelf, got %v", err)
	}
}

func TestFriendRequest_UnknownTargetRejected(t *testing.T) {
	t.Parallel()

	svc := service.NewFriendService(twoUsers(), NewMockFriendRepository(), nil)

	_, err := svc.Request(context.Background(), "user-1", "nobody")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFriendRequest_DuplicateEitherDirectionRejected(t *testing.T) {
	t.Parallel()

	friendRepo := NewMockFriendRepository()
	svc := service.NewFriendService(twoUsers(), friendRepo, nil)

	if _, err := svc.Request(context.Background(), "user-1", "user-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Request(context.Background(), "user-1", "user-2"); !errors.Is(err, service.ErrFriendRequestExists) {
		t.Errorf("expected ErrFriendRequestExists, got %v", err)
	}
	// The reverse direction is the same pair.
	if _, err := svc.Request(context.Background(), "user-2", "user-1"); !errors.Is(err, service.ErrFriendRequestExists) {
		t.Errorf("expected ErrFriendRequestExists for reverse direction, got %v", err)
	}
}

func TestFriendAccept_OnlyAddresseeCanAccept(t *testing.T) {
	t.Parallel()

	friendRepo := NewMockFriendRepository()
	svc := service.NewFriendService(twoUsers(), friendRepo, nil)

	if _, err := svc.Request(context.Background(), "user-1", "user-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The sender cannot accept their own request.
	if _, err := svc.Accept(context.Background(), "user-1", "user-2"); !errors.Is(err, service.ErrFriendRequestNotPending) {
		t.Errorf("expected ErrFriendRequestNotPending, got %v", err)
	}

	// Accepting twice fails the second time.
	if _, err := svc.Accept(context.Background(), "user-2", "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Accept(context.Background(), "user-2", "user-1"); !errors.Is(err, service.ErrFriendRequestNotPending) {
		t.Errorf("expected ErrFriendRequestNotPending on second accept, got %v", err)
	}
}

func TestFriendAccept_NoRequestRejected(t *testing.T) {
	t.Parallel()

	svc := service.NewFriendService(twoUsers(), NewMockFriendRepository(), nil)

	_, err := svc.Accept(context.Background(), "user-2", "user-1")
	if !errors.Is(err, service.ErrFriendRequestNotPending) {
		t.Errorf("expected ErrFriendRequestNotPending, got %v", err)
	}
}
