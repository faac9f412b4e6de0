package usecase

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/northcourt/club-api/internal/domain/user"
	"github.com/northcourt/club-api/internal/platform/token"
)

const defaultSessionTTL = 12 * time.Hour

// AuthService checks the admin credential pair and issues session
// tokens. There is a single admin identity; member accounts are out of
// scope for this API.
type AuthService struct {
	signer        *token.Signer
	adminEmail    string
	adminPassword string
	sessionTTL    time.Duration
	logger        *slog.Logger
}

type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
}

func NewAuthService(signer *token.Signer, adminEmail, adminPassword string, sessionTTL time.Duration, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}

	return &AuthService{
		signer:        signer,
		adminEmail:    strings.TrimSpace(adminEmail),
		adminPassword: adminPassword,
		sessionTTL:    sessionTTL,
		logger:        logger,
	}
}

// Login verifies the credential pair in constant time and issues a
// bearer token. Wrong email and wrong password are indistinguishable to
// the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	ctx, span := startSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	if s.adminEmail == "" || s.adminPassword == "" {
		s.logger.ErrorContext(ctx, "admin credentials are not configured")
		return LoginResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	emailMatch := constantTimeEquals(email, s.adminEmail)
	passwordMatch := constantTimeEquals(password, s.adminPassword)
	if !emailMatch || !passwordMatch {
		s.logger.WarnContext(ctx, "login rejected", "email", email)
		return LoginResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	signed, err := s.signer.Issue(email, s.sessionTTL)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue session token: %w", err)
	}

	s.logger.InfoContext(ctx, "admin logged in", "email", email)

	return LoginResult{Token: signed, ExpiresIn: s.sessionTTL}, nil
}

// VerifyAccessToken checks a bearer token and returns the principal it
// was issued to. Any verification failure maps to ErrUnauthorized.
func (s *AuthService) VerifyAccessToken(ctx context.Context, raw string) (user.Principal, error) {
	_, span := startSpan(ctx, "usecase.AuthService.VerifyAccessToken")
	defer span.End()

	claims, err := s.signer.Verify(raw)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	return user.Principal{Subject: claims.Subject}, nil
}

// constantTimeEquals hashes both sides first so comparison time does
// not leak the configured value's length.
func constantTimeEquals(a, b string) bool {
	ah := sha256.Sum256([]byte(a))
	bh := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ah[:], bh[:]) == 1
}
