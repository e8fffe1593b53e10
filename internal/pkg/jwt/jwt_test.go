package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestValidateAccessTokenRoundTrip(t *testing.T) {
	svc := NewService("secret", time.Minute)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, RoleHost)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID || claims.Role != RoleHost {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateAccessTokenRejects(t *testing.T) {
	svc := NewService("secret", time.Minute)

	expired, _ := NewService("secret", -time.Minute).GenerateAccessToken(uuid.New(), RoleGuest)
	if _, err := svc.ValidateAccessToken(expired); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}

	foreign, _ := NewService("other", time.Minute).GenerateAccessToken(uuid.New(), RoleGuest)
	if _, err := svc.ValidateAccessToken(foreign); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}

	unknownRole, _ := svc.GenerateAccessToken(uuid.New(), "superuser")
	if _, err := svc.ValidateAccessToken(unknownRole); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for unknown role, got %v", err)
	}
}
