package memory

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"
)

type pendingConfirmation struct {
	token     string
	expiresAt time.Time
}

// ConfirmationStore keeps pending confirmations in memory, one per client
// and action. Issuing again replaces the previous token. Any Consume attempt
// ends the pending confirmation, whether or not the token matched.
type ConfirmationStore struct {
	mu      sync.Mutex
	pending map[string]pendingConfirmation
	now     func() time.Time
}

func NewConfirmationStore() *ConfirmationStore {
	return &ConfirmationStore{pending: make(map[string]pendingConfirmation), now: time.Now}
}

func (s *ConfirmationStore) Issue(_ context.Context, clientID, action string, ttl time.Duration) (string, error) {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[key(clientID, action)] = pendingConfirmation{token: token, expiresAt: s.now().Add(ttl)}
	return token, nil
}

func (s *ConfirmationStore) Consume(_ context.Context, clientID, action, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(clientID, action)
	p, ok := s.pending[k]
	if !ok {
		return false, nil
	}
	delete(s.pending, k)
	if s.now().After(p.expiresAt) {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(p.token), []byte(token)) == 1, nil
}

// Sweep drops expired confirmations.
func (s *ConfirmationStore) Sweep(time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for k, p := range s.pending {
		if now.After(p.expiresAt) {
			delete(s.pending, k)
			n++
		}
	}
	return n
}

func key(clientID, action string) string {
	return action + ":" + clientID
}
