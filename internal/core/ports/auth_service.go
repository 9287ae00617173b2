package ports

import (
	"context"

	"github.com/lumina-market/storefront/internal/core/domain"
)

// CredentialVerifier decides whether sign-in credentials belong to the
// administrator. Everything else signs in as a customer.
type CredentialVerifier interface {
	IsAdministrator(ctx context.Context, email, password string) (bool, error)
}

// SessionStore holds at most one session per client.
type SessionStore interface {
	Get(clientID string) (*domain.Session, bool)
	Set(clientID string, s *domain.Session)
	Delete(clientID string) bool
}

// LoginResult is returned after a successful sign-in or sign-up.
type LoginResult struct {
	Session *domain.Session
	Token   string
}

// AuthService implements the mock authentication flow.
type AuthService interface {
	Login(ctx context.Context, clientID string, creds domain.Credentials, mode domain.AuthMode) (*LoginResult, error)
	Current(ctx context.Context, clientID string) (*domain.Session, error)
	RequestLogout(ctx context.Context, clientID string) (*Confirmation, error)
	ConfirmLogout(ctx context.Context, clientID, token string) error
}
