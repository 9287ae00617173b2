package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/core/ports"
)

// ViewService implements ports.ViewService. It owns no data of its own and
// reads through the other services to build a page.
type ViewService struct {
	views    ports.ViewStateStore
	sessions ports.SessionStore
	catalog  ports.CatalogService
	cart     ports.CartService
	chat     ports.ChatService
	logger   zerolog.Logger
}

func NewViewService(
	views ports.ViewStateStore,
	sessions ports.SessionStore,
	catalog ports.CatalogService,
	cart ports.CartService,
	chat ports.ChatService,
	logger zerolog.Logger,
) *ViewService {
	return &ViewService{
		views:    views,
		sessions: sessions,
		catalog:  catalog,
		cart:     cart,
		chat:     chat,
		logger:   logger,
	}
}

func (s *ViewService) State(clientID string) domain.ViewState {
	return s.views.Get(clientID)
}

// SetMode switches the top-level page. Only an administrator may open the
// dashboard; going back to the storefront is always allowed.
func (s *ViewService) SetMode(_ context.Context, clientID string, mode domain.ViewMode) (domain.ViewState, error) {
	switch mode {
	case domain.ViewStorefront:
	case domain.ViewAdmin:
		session, ok := s.sessions.Get(clientID)
		if !ok {
			return s.views.Get(clientID), domain.ErrNoSession
		}
		if !session.IsAdmin() {
			return s.views.Get(clientID), domain.ErrForbidden
		}
	default:
		return s.views.Get(clientID), fmt.Errorf("%w: unknown view mode %q", domain.ErrInvalidArgument, mode)
	}
	return s.views.Update(clientID, func(v *domain.ViewState) { v.Mode = mode }), nil
}

func (s *ViewService) SetCartOpen(clientID string, open bool) domain.ViewState {
	return s.views.Update(clientID, func(v *domain.ViewState) { v.CartOpen = open })
}

func (s *ViewService) SetChatOpen(clientID string, open bool) domain.ViewState {
	return s.views.Update(clientID, func(v *domain.ViewState) { v.ChatOpen = open })
}

// Page builds everything the client renders in one pass. The product grid is
// the catalog filtered by category and query. The chat transcript is only
// included once the client has started the widget, so rendering a page never
// opens a provider conversation.
func (s *ViewService) Page(ctx context.Context, clientID string, category domain.Category, query string) (*ports.StorefrontPage, error) {
	products, err := s.catalog.Filter(ctx, category, query)
	if err != nil {
		return nil, err
	}
	cart, err := s.cart.View(ctx, clientID)
	if err != nil {
		return nil, err
	}

	page := &ports.StorefrontPage{
		View:       s.views.Get(clientID),
		Categories: append([]domain.Category(nil), domain.Categories...),
		Products:   products,
		Cart:       cart,
	}
	if session, ok := s.sessions.Get(clientID); ok {
		page.Session = session
	}
	if s.chat.Started(clientID) {
		transcript, err := s.chat.Transcript(ctx, clientID)
		if err != nil {
			return nil, err
		}
		page.Chat = transcript
	}
	return page, nil
}
