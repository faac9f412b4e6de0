package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/northcourt/club-api/internal/platform/token"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()

	signer, err := token.NewSigner("test-secret")
	if err != nil {
		t.Fatalf("create signer: %v", err)
	}

	return NewAuthService(signer, "admin@example.com", "hunter2-long-enough", time.Hour, discardLogger())
}

func TestAuthService_Login(t *testing.T) {
	service := newAuthFixture(t)

	result, err := service.Login(t.Context(), "admin@example.com", "hunter2-long-enough")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a session token")
	}
	if result.ExpiresIn != time.Hour {
		t.Fatalf("unexpected ttl: %s", result.ExpiresIn)
	}

	principal, err := service.VerifyAccessToken(t.Context(), result.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if principal.Subject != "admin@example.com" {
		t.Fatalf("unexpected principal subject: %s", principal.Subject)
	}
}

func TestAuthService_LoginRejected(t *testing.T) {
	service := newAuthFixture(t)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "admin@example.com", "nope"},
		{"wrong email", "intruder@example.com", "hunter2-long-enough"},
		{"both wrong", "intruder@example.com", "nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Login(t.Context(), tc.email, tc.password)
			if !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestAuthService_LoginWithoutConfiguredAdmin(t *testing.T) {
	signer, err := token.NewSigner("test-secret")
	if err != nil {
		t.Fatalf("create signer: %v", err)
	}
	service := NewAuthService(signer, "", "", time.Hour, discardLogger())

	_, err = service.Login(t.Context(), "admin@example.com", "anything")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_VerifyGarbageToken(t *testing.T) {
	service := newAuthFixture(t)

	if _, err := service.VerifyAccessToken(t.Context(), "not-a-token"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
