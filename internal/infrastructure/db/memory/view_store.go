package memory

import (
	"time"

	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/pkg/clientmap"
)

// ViewStateStore keeps the presentation state of each client.
type ViewStateStore struct {
	states *clientmap.Map[domain.ViewState]
}

func NewViewStateStore() *ViewStateStore {
	return &ViewStateStore{states: clientmap.New[domain.ViewState]()}
}

func (s *ViewStateStore) Get(clientID string) domain.ViewState {
	if v, ok := s.states.Get(clientID); ok {
		return v
	}
	return domain.DefaultViewState()
}

func (s *ViewStateStore) Update(clientID string, fn func(*domain.ViewState)) domain.ViewState {
	return s.states.Update(clientID, domain.DefaultViewState, fn)
}

func (s *ViewStateStore) Sweep(idle time.Duration) int {
	return s.states.Sweep(idle, nil)
}
