package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/volunteer-service/internal/domain"
)

func TestRegisterForcesPendingVolunteer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user, err := f.authService.Register(ctx, RegisterInput{
		Name:     "Jane",
		Email:    "Jane@Example.COM",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.Role != domain.UserRoleVolunteer {
		t.Fatalf("expected volunteer role, got %s", user.Role)
	}
	if user.Status != domain.UserStatusPending {
		t.Fatalf("expected pending status, got %s", user.Status)
	}
	if user.Email != "jane@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.PasswordHash == "password123" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.mustRegisterUser(t, "Jane", "jane@example.com")

	_, err := f.authService.Register(ctx, RegisterInput{
		Name:     "Other",
		Email:    "JANE@example.com",
		Password: "password123",
	})
	if code := errCode(t, err); code != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got %s", code)
	}
}

func TestLoginRejectsUnapproved(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.mustRegisterUser(t, "Jane", "jane@example.com")

	_, _, _, err := f.authService.Login(ctx, "jane@example.com", "password123")
	if code := errCode(t, err); code != "PENDING_APPROVAL" {
		t.Fatalf("expected PENDING_APPROVAL, got %s", code)
	}
}

func TestLoginInvalidCredentialsConstantShape(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user := f.mustRegisterUser(t, "Jane", "jane@example.com")
	f.mustApprove(t, user.ID)

	_, _, _, unknownErr := f.authService.Login(ctx, "nobody@example.com", "password123")
	_, _, _, wrongErr := f.authService.Login(ctx, "jane@example.com", "wrong-password")

	unknownCode := errCode(t, unknownErr)
	wrongCode := errCode(t, wrongErr)
	if unknownCode != "UNAUTHORIZED" || wrongCode != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED for both, got %s / %s", unknownCode, wrongCode)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("credential errors must be indistinguishable: %q vs %q", unknownErr, wrongErr)
	}
}

func TestApproveThenLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user := f.mustRegisterUser(t, "Jane", "jane@example.com")

	if _, _, _, err := f.authService.Login(ctx, "jane@example.com", "password123"); err == nil {
		t.Fatal("login must fail before approval")
	}

	f.mustApprove(t, user.ID)

	loggedIn, token, exp, err := f.authService.Login(ctx, "jane@example.com", "password123")
	if err != nil {
		t.Fatalf("login after approval: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, loggedIn.ID)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if remaining := time.Until(exp); remaining < 29*24*time.Hour {
		t.Fatalf("expected ~30 day expiry, got %v", remaining)
	}

	claims, err := f.authService.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token subject mismatch: %s != %s", claims.UserID, user.ID)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user, err := f.authService.Register(ctx, RegisterInput{
		Name:        "Jane",
		Email:       "jane@example.com",
		Password:    "password123",
		PhoneNumber: "555-0101",
		Location:    "Springfield",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	f.mustApprove(t, user.ID)

	name := "Jane Doe"
	updated, token, _, err := f.authService.UpdateProfile(ctx, user.ID, ProfileUpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Jane Doe" {
		t.Fatalf("name not updated: %s", updated.Name)
	}
	if updated.PhoneNumber != "555-0101" || updated.Location != "Springfield" {
		t.Fatal("omitted fields must stay unchanged")
	}
	if token == "" {
		t.Fatal("profile update must return a refreshed token")
	}

	// explicit empty value is applied, not treated as omitted
	empty := ""
	updated, _, _, err = f.authService.UpdateProfile(ctx, user.ID, ProfileUpdateInput{Location: &empty})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Location != "" {
		t.Fatalf("explicit empty location not applied: %q", updated.Location)
	}
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user := f.mustRegisterUser(t, "Jane", "jane@example.com")
	f.mustApprove(t, user.ID)

	newPassword := "new-password-456"
	if _, _, _, err := f.authService.UpdateProfile(ctx, user.ID, ProfileUpdateInput{Password: &newPassword}); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	if _, _, _, err := f.authService.Login(ctx, "jane@example.com", "password123"); err == nil {
		t.Fatal("old password must no longer work")
	}
	if _, _, _, err := f.authService.Login(ctx, "jane@example.com", newPassword); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}
