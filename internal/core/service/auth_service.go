package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/core/ports"
	"github.com/lumina-market/storefront/internal/infrastructure/metrics"
)

// MinPasswordLength is the shortest password the sign-in form accepts.
const MinPasswordLength = 6

const administratorName = "Administrator"

// Messages shown under the sign-in form.
const (
	msgMissingFields  = "모든 필드를 입력해주세요."
	msgShortPassword  = "비밀번호는 6자 이상이어야 합니다."
	defaultConfirmTTL = 2 * time.Minute
)

// AuthOptions tunes AuthService.
type AuthOptions struct {
	JWTSecret string
	TokenTTL  time.Duration
	// LoginDelay simulates the round trip of a real identity provider.
	LoginDelay time.Duration
	ConfirmTTL time.Duration
}

// AuthService implements the mock sign-in flow. There is no user database:
// sign-up and sign-in both succeed for any well-formed input, and only the
// CredentialVerifier can grant the administrator role.
type AuthService struct {
	verifier ports.CredentialVerifier
	sessions ports.SessionStore
	confirms ports.ConfirmationStore
	views    ports.ViewStateStore
	opts     AuthOptions
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	verifier ports.CredentialVerifier,
	sessions ports.SessionStore,
	confirms ports.ConfirmationStore,
	views ports.ViewStateStore,
	opts AuthOptions,
	logger zerolog.Logger,
) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.ConfirmTTL <= 0 {
		opts.ConfirmTTL = defaultConfirmTTL
	}
	return &AuthService{
		verifier: verifier,
		sessions: sessions,
		confirms: confirms,
		views:    views,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// Login validates the form, waits out the simulated delay and opens a session
// for clientID, replacing any previous one.
func (s *AuthService) Login(ctx context.Context, clientID string, creds domain.Credentials, mode domain.AuthMode) (*ports.LoginResult, error) {
	if mode != domain.AuthModeSignIn && mode != domain.AuthModeSignUp {
		return nil, fmt.Errorf("%w: unknown auth mode %q", domain.ErrInvalidArgument, mode)
	}
	if err := validateCredentials(creds, mode); err != nil {
		metrics.LoginsTotal.WithLabelValues(string(mode), "rejected").Inc()
		return nil, err
	}

	if err := sleep(ctx, s.opts.LoginDelay); err != nil {
		return nil, err
	}

	session := &domain.Session{
		Email:     creds.Email,
		Role:      domain.RoleCustomer,
		CreatedAt: s.now().UTC(),
	}
	switch mode {
	case domain.AuthModeSignUp:
		session.Name = creds.Name
	case domain.AuthModeSignIn:
		isAdmin, err := s.verifier.IsAdministrator(ctx, creds.Email, creds.Password)
		if err != nil {
			return nil, fmt.Errorf("verify credentials: %w", err)
		}
		if isAdmin {
			session.Name = administratorName
			session.Role = domain.RoleAdministrator
		} else {
			session.Name = localPart(creds.Email)
		}
	}

	token, err := s.generateToken(clientID, session)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.sessions.Set(clientID, session)
	s.views.Update(clientID, func(v *domain.ViewState) {
		if session.IsAdmin() {
			v.Mode = domain.ViewAdmin
		} else {
			v.Mode = domain.ViewStorefront
		}
	})

	metrics.LoginsTotal.WithLabelValues(string(mode), string(session.Role)).Inc()
	s.logger.Info().Str("client_id", clientID).Str("role", string(session.Role)).Str("mode", string(mode)).Msg("session opened")

	return &ports.LoginResult{Session: session, Token: token}, nil
}

// Current returns the client's session or domain.ErrNoSession.
func (s *AuthService) Current(_ context.Context, clientID string) (*domain.Session, error) {
	session, ok := s.sessions.Get(clientID)
	if !ok {
		return nil, domain.ErrNoSession
	}
	return session, nil
}

// RequestLogout issues the confirmation the client must echo back to log out.
func (s *AuthService) RequestLogout(ctx context.Context, clientID string) (*ports.Confirmation, error) {
	if _, ok := s.sessions.Get(clientID); !ok {
		return nil, domain.ErrNoSession
	}
	token, err := s.confirms.Issue(ctx, clientID, ports.ActionLogout, s.opts.ConfirmTTL)
	if err != nil {
		return nil, err
	}
	return &ports.Confirmation{
		Token:     token,
		Action:    ports.ActionLogout,
		ExpiresAt: s.now().Add(s.opts.ConfirmTTL).UTC(),
	}, nil
}

// ConfirmLogout ends the session and puts the client back on the storefront.
func (s *AuthService) ConfirmLogout(ctx context.Context, clientID, token string) error {
	ok, err := s.confirms.Consume(ctx, clientID, ports.ActionLogout, token)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrConfirmationRequired
	}

	s.sessions.Delete(clientID)
	s.views.Update(clientID, func(v *domain.ViewState) { v.Mode = domain.ViewStorefront })
	s.logger.Info().Str("client_id", clientID).Msg("session closed")
	return nil
}

func (s *AuthService) generateToken(clientID string, session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"name":      session.Name,
		"email":     session.Email,
		"role":      string(session.Role),
		"client_id": clientID,
		"iat":       s.now().Unix(),
		"exp":       s.now().Add(s.opts.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.opts.JWTSecret))
}

func validateCredentials(creds domain.Credentials, mode domain.AuthMode) error {
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return domain.NewValidationError("credentials", msgMissingFields)
	}
	if mode == domain.AuthModeSignUp && strings.TrimSpace(creds.Name) == "" {
		return domain.NewValidationError("name", msgMissingFields)
	}
	if utf8.RuneCountInString(creds.Password) < MinPasswordLength {
		return domain.NewValidationError("password", msgShortPassword)
	}
	return nil
}

func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
