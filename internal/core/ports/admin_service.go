package ports

import (
	"context"

	"github.com/lumina-market/storefront/internal/core/domain"
)

// SaveResult tells whether Save created or updated the product.
type SaveResult struct {
	Product domain.Product
	Created bool
}

// AdminService backs the product dashboard.
type AdminService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Draft(ctx context.Context) domain.Product
	Edit(ctx context.Context, id int64) (*domain.Product, error)
	Save(ctx context.Context, p domain.Product) (*SaveResult, error)
	RequestDelete(ctx context.Context, clientID string, id int64) (*Confirmation, error)
	ConfirmDelete(ctx context.Context, clientID string, id int64, token string) error
}
