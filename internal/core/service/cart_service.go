package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/core/ports"
	"github.com/lumina-market/storefront/internal/infrastructure/metrics"
	"github.com/lumina-market/storefront/internal/pkg/clientmap"
)

// CartService implements ports.CartService. Every operation is a
// load-mutate-save cycle serialized per client.
type CartService struct {
	repo    ports.CartRepository
	catalog ports.CatalogService
	views   ports.ViewStateStore
	logger  zerolog.Logger

	locks *clientmap.Map[*sync.Mutex]
}

func NewCartService(repo ports.CartRepository, catalog ports.CatalogService, views ports.ViewStateStore, logger zerolog.Logger) *CartService {
	return &CartService{
		repo:    repo,
		catalog: catalog,
		views:   views,
		logger:  logger,
		locks:   clientmap.New[*sync.Mutex](),
	}
}

func (s *CartService) lock(clientID string) func() {
	mu := s.locks.GetOrCreate(clientID, func() *sync.Mutex { return &sync.Mutex{} })
	mu.Lock()
	return mu.Unlock
}

// Sweep forgets the per-client locks of idle clients. Locks currently held
// are kept.
func (s *CartService) Sweep(idle time.Duration) int {
	return s.locks.Sweep(idle, func(mu *sync.Mutex) bool {
		if mu.TryLock() {
			mu.Unlock()
			return false
		}
		return true
	})
}

func (s *CartService) View(ctx context.Context, clientID string) (*ports.CartView, error) {
	cart, err := s.repo.Load(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return toCartView(cart), nil
}

// AddToCart merges the catalog product into the cart and opens the cart drawer.
func (s *CartService) AddToCart(ctx context.Context, clientID string, productID int64) (*ports.CartView, error) {
	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	view, err := s.mutate(ctx, clientID, func(c *domain.Cart) error {
		line, err := c.Add(*product)
		if err != nil {
			return fmt.Errorf("add to cart: %w", err)
		}
		s.logger.Debug().Str("client_id", clientID).Int64("product_id", productID).Int("quantity", line.Quantity).Msg("added to cart")
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.views.Update(clientID, func(v *domain.ViewState) { v.CartOpen = true })
	metrics.CartAddsTotal.WithLabelValues(string(product.Category)).Inc()
	return view, nil
}

// UpdateQuantity changes a line by delta, never going below one unit.
func (s *CartService) UpdateQuantity(ctx context.Context, clientID string, productID int64, delta int) (*ports.CartView, error) {
	return s.mutate(ctx, clientID, func(c *domain.Cart) error {
		if err := c.UpdateQuantity(productID, delta); err != nil {
			return fmt.Errorf("update quantity: %w", err)
		}
		return nil
	})
}

func (s *CartService) RemoveItem(ctx context.Context, clientID string, productID int64) (*ports.CartView, error) {
	return s.mutate(ctx, clientID, func(c *domain.Cart) error {
		c.Remove(productID)
		return nil
	})
}

func (s *CartService) mutate(ctx context.Context, clientID string, fn func(*domain.Cart) error) (*ports.CartView, error) {
	unlock := s.lock(clientID)
	defer unlock()

	cart, err := s.repo.Load(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, clientID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return toCartView(cart), nil
}

func toCartView(c *domain.Cart) *ports.CartView {
	lines := c.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return &ports.CartView{
		Lines:     lines,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}
