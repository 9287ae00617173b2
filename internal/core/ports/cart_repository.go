package ports

import (
	"context"

	"github.com/lumina-market/storefront/internal/core/domain"
)

// CartRepository keeps one cart per client id.
type CartRepository interface {
	// Load returns the client's cart, or an empty cart when none exists.
	Load(ctx context.Context, clientID string) (*domain.Cart, error)
	Save(ctx context.Context, clientID string, cart *domain.Cart) error
	Delete(ctx context.Context, clientID string) error
}
