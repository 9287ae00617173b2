package ports

import (
	"context"

	"github.com/lumina-market/storefront/internal/core/domain"
)

// CartView is what the cart drawer renders.
type CartView struct {
	Lines     []domain.CartLine
	Total     int64
	ItemCount int
}

// CartService operates the cart of one client at a time.
type CartService interface {
	View(ctx context.Context, clientID string) (*CartView, error)
	// AddToCart looks the product up in the catalog and merges it into the cart.
	AddToCart(ctx context.Context, clientID string, productID int64) (*CartView, error)
	UpdateQuantity(ctx context.Context, clientID string, productID int64, delta int) (*CartView, error)
	RemoveItem(ctx context.Context, clientID string, productID int64) (*CartView, error)
}
