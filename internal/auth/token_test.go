package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/volunteer-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 30)

	token, expiresAt, err := tm.GenerateToken("user-1", domain.UserRoleVolunteer)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if remaining := time.Until(expiresAt); remaining < 29*24*time.Hour || remaining > 31*24*time.Hour {
		t.Fatalf("expected ~30 day expiry, got %v", remaining)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != domain.UserRoleVolunteer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("subject mismatch: %s", claims.Subject)
	}
}

func TestTokenTTLDefault(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	if tm.ttl != 30*24*time.Hour {
		t.Fatalf("expected 30 day default ttl, got %v", tm.ttl)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tm := &TokenManager{secret: []byte("secret"), ttl: -time.Minute}

	token, _, err := tm.GenerateToken("user-1", domain.UserRoleVolunteer)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := tm.ParseToken(token); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewTokenManager("secret-a", 30)
	verifier := NewTokenManager("secret-b", 30)

	token, _, err := issuer.GenerateToken("user-1", domain.UserRoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	tm := NewTokenManager("secret", 30)
	if _, err := tm.ParseToken("not.a.jwt"); err == nil {
		t.Fatal("malformed token must be rejected")
	}
}
