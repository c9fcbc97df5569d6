package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taubit/internal/auth"
	"taubit/internal/domain"
	"taubit/internal/repository"
	"taubit/internal/rewards"
)

const (
	signupBonusPoints        = 1000
	premiumSignupBonusPoints = 2000
	premiumTermDays          = 30
)

// AccountService handles signup, login, sessions and account stats.
type AccountService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	tokens      *auth.TokenManager
}

// NewAccountService creates a new AccountService.
func NewAccountService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, tokens *auth.TokenManager) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
	}
}

// SignupRequest contains the parameters for creating an account.
type SignupRequest struct {
	Email    string
	Password string
	Name     string
	Premium  bool
}

// AuthResponse contains the authenticated user and a bearer token.
type AuthResponse struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Signup creates an account with the welcome bonus and opens a session.
func (s *AccountService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || !strings.Contains(req.Email, "@") || req.Name == "" || len(req.Password) < 8 {
		return nil, ErrInvalidSignup
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	bonus := signupBonusPoints
	var premiumExpiry time.Time
	if req.Premium {
		bonus = premiumSignupBonusPoints
		premiumExpiry = time.Now().AddDate(0, 0, premiumTermDays)
	}

	user := &domain.User{
		ID:            uuid.New().String(),
		Email:         req.Email,
		PasswordHash:  string(hash),
		Name:          req.Name,
		Points:        bonus,
		WeeklyPoints:  0,
		Experience:    0,
		Level:         1,
		IsPremium:     req.Premium,
		PremiumExpiry: premiumExpiry,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.openSession(ctx, user)
}

// Login authenticates an existing account and opens a session.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(ctx, user)
}

func (s *AccountService) openSession(ctx context.Context, user *domain.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: auth.HashToken(token),
		ExpiresAt: expiresAt,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout revokes the session behind the given token.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteByTokenHash(ctx, auth.HashToken(token))
}

// AccountStats combines stored account totals with derived progression.
type AccountStats struct {
	User        *domain.User
	Progression rewards.Progression
}

// GetStats retrieves the user's account totals and level progression.
func (s *AccountService) GetStats(ctx context.Context, userID string) (*AccountStats, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &AccountStats{
		User:        user,
		Progression: rewards.Describe(user.Experience),
	}, nil
}

// UpdateProfile changes the user's display name and avatar.
func (s *AccountService) UpdateProfile(ctx context.Context, userID, name, avatar string) (*domain.User, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidSignup
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, name, avatar); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// UpgradeToPremium turns premium on for a 30-day term.
func (s *AccountService) UpgradeToPremium(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsPremium = true
	user.PremiumExpiry = time.Now().AddDate(0, 0, premiumTermDays)

	if err := s.userRepo.SetPremium(ctx, user.ID, true, user.PremiumExpiry); err != nil {
		return nil, err
	}
	return user, nil
}

// CancelPremium turns premium off immediately.
func (s *AccountService) CancelPremium(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsPremium = false
	user.PremiumExpiry = time.Time{}

	if err := s.userRepo.SetPremium(ctx, user.ID, false, time.Time{}); err != nil {
		return nil, err
	}
	return user, nil
}
