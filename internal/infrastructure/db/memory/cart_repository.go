package memory

import (
	"context"
	"time"

	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/pkg/clientmap"
)

// CartRepository keeps carts in process memory; they vanish on restart.
type CartRepository struct {
	carts *clientmap.Map[*domain.Cart]
}

func NewCartRepository() *CartRepository {
	return &CartRepository{carts: clientmap.New[*domain.Cart]()}
}

func (r *CartRepository) Load(_ context.Context, clientID string) (*domain.Cart, error) {
	cart, ok := r.carts.Get(clientID)
	if !ok {
		return &domain.Cart{}, nil
	}
	return cart.Clone(), nil
}

func (r *CartRepository) Save(_ context.Context, clientID string, cart *domain.Cart) error {
	r.carts.Set(clientID, cart.Clone())
	return nil
}

func (r *CartRepository) Delete(_ context.Context, clientID string) error {
	r.carts.Delete(clientID)
	return nil
}

// Sweep forgets carts of clients idle for longer than idle.
func (r *CartRepository) Sweep(idle time.Duration) int {
	return r.carts.Sweep(idle, nil)
}
