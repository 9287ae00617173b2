package memory

import (
	"time"

	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/pkg/clientmap"
)

// SessionStore holds at most one session per client.
type SessionStore struct {
	sessions *clientmap.Map[*domain.Session]
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: clientmap.New[*domain.Session]()}
}

func (s *SessionStore) Get(clientID string) (*domain.Session, bool) {
	sess, ok := s.sessions.Get(clientID)
	if !ok {
		return nil, false
	}
	cp := *sess
	return &cp, true
}

func (s *SessionStore) Set(clientID string, sess *domain.Session) {
	cp := *sess
	s.sessions.Set(clientID, &cp)
}

func (s *SessionStore) Delete(clientID string) bool {
	return s.sessions.Delete(clientID)
}

func (s *SessionStore) Sweep(idle time.Duration) int {
	return s.sessions.Sweep(idle, nil)
}
