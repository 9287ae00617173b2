// Package seed loads the initial catalog.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lumina-market/storefront/internal/core/domain"
)

//go:embed products.yaml
var defaultProducts []byte

type file struct {
	Products []domain.Product `yaml:"products"`
}

// Products returns the seed catalog from path, or the built-in catalog when
// path is empty.
func Products(path string) ([]domain.Product, error) {
	data := defaultProducts
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes a seed document and validates every product in it.
func Parse(data []byte) ([]domain.Product, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seen := make(map[int64]struct{}, len(f.Products))
	for i, p := range f.Products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("seed product[%d]: %w", i, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("seed product[%d]: %w", i, domain.ErrDuplicateProduct)
		}
		seen[p.ID] = struct{}{}
		if f.Products[i].Tags == nil {
			f.Products[i].Tags = []string{}
		}
	}
	return f.Products, nil
}
