package ports

import (
	"context"

	"github.com/lumina-market/storefront/internal/core/domain"
)

// ViewStateStore keeps the presentation state of every client. Services that
// have visible side effects (opening the cart drawer, switching to the admin
// dashboard) write through it.
type ViewStateStore interface {
	Get(clientID string) domain.ViewState
	Update(clientID string, fn func(*domain.ViewState)) domain.ViewState
}

// StorefrontPage is everything the single-page client needs to render.
type StorefrontPage struct {
	View       domain.ViewState
	Session    *domain.Session
	Categories []domain.Category
	Products   []domain.Product
	Cart       *CartView
	// Chat is nil until the client has opened the chat widget.
	Chat []domain.ChatMessage
}

// ViewService composes the stores into pages and gates the view mode.
type ViewService interface {
	State(clientID string) domain.ViewState
	// SetMode switches between storefront and admin. Admin requires an
	// administrator session.
	SetMode(ctx context.Context, clientID string, mode domain.ViewMode) (domain.ViewState, error)
	SetCartOpen(clientID string, open bool) domain.ViewState
	SetChatOpen(clientID string, open bool) domain.ViewState
	Page(ctx context.Context, clientID string, category domain.Category, query string) (*StorefrontPage, error)
}
