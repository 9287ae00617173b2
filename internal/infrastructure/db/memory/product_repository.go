package memory

import (
	"context"
	"sync"

	"github.com/lumina-market/storefront/internal/core/domain"
)

// ProductRepository keeps the catalog in a slice, newest product first.
type ProductRepository struct {
	mu       sync.RWMutex
	products []domain.Product
}

// NewProductRepository returns a repository holding a copy of seed.
func NewProductRepository(seed []domain.Product) *ProductRepository {
	r := &ProductRepository{products: make([]domain.Product, 0, len(seed))}
	for _, p := range seed {
		r.products = append(r.products, p.Clone())
	}
	return r
}

func (r *ProductRepository) indexOf(id int64) int {
	for i := range r.products {
		if r.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *ProductRepository) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, len(r.products))
	for i, p := range r.products {
		out[i] = p.Clone()
	}
	return out, nil
}

func (r *ProductRepository) Get(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrProductNotFound
	}
	p := r.products[i].Clone()
	return &p, nil
}

func (r *ProductRepository) Insert(_ context.Context, p domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(p.ID) >= 0 {
		return domain.ErrDuplicateProduct
	}
	r.products = append([]domain.Product{p.Clone()}, r.products...)
	return nil
}

func (r *ProductRepository) Replace(_ context.Context, p domain.Product) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(p.ID)
	if i < 0 {
		return false, nil
	}
	r.products[i] = p.Clone()
	return true, nil
}

func (r *ProductRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.products = append(r.products[:i], r.products[i+1:]...)
	return true, nil
}
