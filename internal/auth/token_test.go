package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := m.Generate("user-1", "rider@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("expiry not in the future")
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("userID = %s, want user-1", claims.UserID)
	}
	if claims.Email != "rider@example.com" {
		t.Errorf("email = %s, want rider@example.com", claims.Email)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	m1 := NewTokenManager("secret-one", time.Hour)
	m2 := NewTokenManager("secret-two", time.Hour)

	token, _, err := m1.Generate("user-1", "rider@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m2.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("test-secret", -time.Minute)

	token, _, err := m.Generate("user-1", "rider@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.Parse(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestParse_Garbage(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("test-secret", time.Hour)

	if _, err := m.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHashToken_Stable(t *testing.T) {
	t.Parallel()

	h1 := HashToken("abc")
	h2 := HashToken("abc")
	if h1 != h2 {
		t.Error("hash not stable")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}
	if HashToken("abd") == h1 {
		t.Error("different tokens produced the same hash")
	}
}
