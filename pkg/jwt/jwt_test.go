package jwt

import (
	"errors"
	"testing"
	"time"

	"labreserva/backend/config"
)

func newTestManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func TestManager_GenerateAndParse(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	token, err := m.GenerateAccessToken(42, "PROFESSOR")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Perfil != "PROFESSOR" {
		t.Errorf("Perfil = %s, want PROFESSOR", claims.Perfil)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %s, want access", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("jti should be set, it keys the revocation blacklist")
	}
	if claims.Subject != "42" {
		t.Errorf("Subject = %s, want 42", claims.Subject)
	}
}

func TestManager_RefreshTokenType(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	token, err := m.GenerateRefreshToken(7, "ADMIN")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("TokenType = %s, want refresh", claims.TokenType)
	}
}

func TestManager_UniqueJTI(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	a, _ := m.GenerateAccessToken(1, "PROFESSOR")
	b, _ := m.GenerateAccessToken(1, "PROFESSOR")

	ca, err := m.ParseToken(a)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	cb, err := m.ParseToken(b)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if ca.ID == cb.ID {
		t.Error("two tokens for the same user must not share a jti")
	}
}

func TestManager_Expired(t *testing.T) {
	m := newTestManager(-1 * time.Minute)

	token, err := m.GenerateAccessToken(1, "PROFESSOR")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("ParseToken error = %v, want %v", err, ErrTokenExpired)
	}
}

func TestManager_WrongSecret(t *testing.T) {
	m := newTestManager(15 * time.Minute)
	outro := NewManager(&config.AuthConfig{
		JWTSecret:       "another-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	token, err := m.GenerateAccessToken(1, "PROFESSOR")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := outro.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("ParseToken error = %v, want %v", err, ErrTokenInvalid)
	}
}

func TestManager_Garbage(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	for _, bad := range []string{"", "abc", "a.b.c"} {
		if _, err := m.ParseToken(bad); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("ParseToken(%q) error = %v, want %v", bad, err, ErrTokenInvalid)
		}
	}
}
