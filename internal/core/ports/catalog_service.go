package ports

import (
	"context"

	"github.com/lumina-market/storefront/internal/core/domain"
)

// CatalogService is the product catalog use-case boundary.
type CatalogService interface {
	Add(ctx context.Context, p domain.Product) error
	// Update replaces an existing product; unknown ids are ignored.
	Update(ctx context.Context, p domain.Product) error
	// Remove deletes a product; unknown ids are ignored.
	Remove(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Filter(ctx context.Context, category domain.Category, query string) ([]domain.Product, error)
}
