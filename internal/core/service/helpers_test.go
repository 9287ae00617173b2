package service

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/infrastructure/db/memory"
	"github.com/lumina-market/storefront/internal/infrastructure/seed"
)

func seedProducts(t *testing.T) []domain.Product {
	t.Helper()
	products, err := seed.Products("")
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	return products
}

func newTestCatalog(t *testing.T) *CatalogService {
	t.Helper()
	return NewCatalogService(memory.NewProductRepository(seedProducts(t)), zerolog.Nop())
}

func ids(products []domain.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
