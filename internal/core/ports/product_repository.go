package ports

import (
	"context"

	"github.com/lumina-market/storefront/internal/core/domain"
)

// ProductRepository stores the catalog in display order (newest first).
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	// Get returns domain.ErrProductNotFound when id is absent.
	Get(ctx context.Context, id int64) (*domain.Product, error)
	// Insert puts p at the front of the catalog. It returns
	// domain.ErrDuplicateProduct when the id is taken.
	Insert(ctx context.Context, p domain.Product) error
	// Replace overwrites the product with p.ID in place and reports whether
	// it existed. A missing id is not an error.
	Replace(ctx context.Context, p domain.Product) (bool, error)
	// Delete removes id and reports whether it existed.
	Delete(ctx context.Context, id int64) (bool, error)
}
