package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"taubit/internal/auth"
	"taubit/internal/service"
)

// ──────────────────────────────────────────────
// ACCOUNT LIFECYCLE EDGE CASES
// ──────────────────────────────────────────────

func newAccountService(userRepo *MockUserRepository, sessionRepo *MockSessionRepository) *service.AccountService {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return service.NewAccountService(userRepo, sessionRepo, tokens)
}

func TestSignup_GrantsWelcomeBonus(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	sessionRepo := NewMockSessionRepository()
	svc := newAccountService(userRepo, sessionRepo)

	resp, err := svc.Signup(context.Background(), service.SignupRequest{
		Email:    "rider@example.com",
		Password: "correct-horse",
		Name:     "Rider One",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.User.Points != 1000 {
		t.Errorf("expected 1000 bonus points, got %d", resp.User.Points)
	}
	if resp.User.Level != 1 {
		t.Errorf("expected level 1, got %d", resp.User.Level)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
	if resp.User.PasswordHash == "correct-horse" {
		t.Error("password must not be stored in plaintext")
	}
	if sessionRepo.SessionCount() != 1 {
		t.Errorf("expected 1 session, got %d", sessionRepo.SessionCount())
	}
}

func TestSignup_PremiumDoublesBonus(t *testing.T) {
	t.Parallel()

	svc := newAccountService(NewMockUserRepository(), NewMockSessionRepository())

	resp, err := svc.Signup(context.Background(), service.SignupRequest{
		Email:    "premium@example.com",
		Password: "correct-horse",
		Name:     "Premium Rider",
		Premium:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.User.Points != 2000 {
		t.Errorf("expected 2000 bonus points, got %d", resp.User.Points)
	}
	if !resp.User.IsPremium {
		t.Error("expected premium account")
	}
	if resp.User.PremiumExpiry.Before(time.Now().AddDate(0, 0, 29)) {
		t.Error("expected roughly 30 days of premium")
	}
}

func TestSignup_DuplicateEmailRejected(t *testing.T) {
	t.Parallel()

	svc := newAccountService(NewMockUserRepository(), NewMockSessionRepository())

	req := service.SignupRequest{
		Email:    "taken@example.com",
		Password: "correct-horse",
		Name:     "First",
	}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req.Name = "Second"
	_, err := svc.Signup(context.Background(), req)
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignup_InvalidInputRejected(t *testing.T) {
	t.Parallel()

	svc := newAccountService(NewMockUserRepository(), NewMockSessionRepository())

	cases := []service.SignupRequest{
		{Email: "", Password: "correct-horse", Name: "No Email"},
		{Email: "not-an-email", Password: "correct-horse", Name: "Bad Email"},
		{Email: "a@b.com", Password: "short", Name: "Short Password"},
		{Email: "a@b.com", Password: "correct-horse", Name: ""},
	}
	for _, req := range cases {
		if _, err := svc.Signup(context.Background(), req); !errors.Is(err, service.ErrInvalidSignup) {
			t.Errorf("signup %+v: expected ErrInvalidSignup, got %v", req, err)
		}
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := newAccountService(NewMockUserRepository(), NewMockSessionRepository())

	if _, err := svc.Signup(context.Background(), service.SignupRequest{
		Email:    "Rider@Example.com",
		Password: "correct-horse",
		Name:     "Rider",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Email comparison is case-insensitive.
	resp, err := svc.Login(context.Background(), "rider@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}

	if _, err := svc.Login(context.Background(), "rider@example.com", "wrong-password"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "correct-horse"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLogout_RevokesSession(t *testing.T) {
	t.Parallel()

	sessionRepo := NewMockSessionRepository()
	svc := newAccountService(NewMockUserRepository(), sessionRepo)

	resp, err := svc.Signup(context.Background(), service.SignupRequest{
		Email:    "rider@example.com",
		Password: "correct-horse",
		Name:     "Rider",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sessionRepo.SessionCount() != 0 {
		t.Errorf("expected 0 sessions after logout, got %d", sessionRepo.SessionCount())
	}
}

func TestGetStats_DerivesProgression(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := newAccountService(userRepo, NewMockSessionRepository())

	resp, err := svc.Signup(context.Background(), service.SignupRequest{
		Email:    "rider@example.com",
		Password: "correct-horse",
		Name:     "Rider",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 250 experience puts the account mid level 3.
	user := userRepo.GetUser(resp.User.ID)
	user.Experience = 250
	user.Level = 3

	stats, err := svc.GetStats(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Progression.Level != 3 {
		t.Errorf("expected level 3, got %d", stats.Progression.Level)
	}
	if stats.Progression.ExperienceToNext != 50 {
		t.Errorf("expected 50 to next, got %d", stats.Progression.ExperienceToNext)
	}
	if stats.Progression.ProgressPercent != 50 {
		t.Errorf("expected 50%% progress, got %v", stats.Progression.ProgressPercent)
	}
}

func TestUpdateProfile_PersistsNameAndAvatar(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := newAccountService(userRepo, NewMockSessionRepository())

	resp, err := svc.Signup(context.Background(), service.SignupRequest{
		Email:    "rider@example.com",
		Password: "correct-horse",
		Name:     "Old Name",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), resp.User.ID, "New Name", "avatar-3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "New Name" || updated.Avatar != "avatar-3" {
		t.Errorf("unexpected profile: name=%q avatar=%q", updated.Name, updated.Avatar)
	}

	// An empty name is rejected.
	if _, err := svc.UpdateProfile(context.Background(), resp.User.ID, "   ", ""); !errors.Is(err, service.ErrInvalidSignup) {
		t.Errorf("expected ErrInvalidSignup, got %v", err)
	}
}

func TestPremium_UpgradeAndCancel(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := newAccountService(userRepo, NewMockSessionRepository())

	resp, err := svc.Signup(context.Background(), service.SignupRequest{
		Email:    "rider@example.com",
		Password: "correct-horse",
		Name:     "Rider",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	upgraded, err := svc.UpgradeToPremium(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !upgraded.IsPremium {
		t.Error("expected premium after upgrade")
	}
	if !userRepo.GetUser(resp.User.ID).IsPremium {
		t.Error("upgrade not persisted")
	}

	cancelled, err := svc.CancelPremium(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled.IsPremium {
		t.Error("expected premium off after cancel")
	}
}
