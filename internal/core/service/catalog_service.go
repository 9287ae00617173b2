package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/core/ports"
)

// CatalogService implements ports.CatalogService.
type CatalogService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// Add puts a new product at the front of the catalog. The caller picks the
// id; reusing one is a precondition violation.
func (s *CatalogService) Add(ctx context.Context, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.repo.Insert(ctx, normalizeTags(p)); err != nil {
		if errors.Is(err, domain.ErrDuplicateProduct) {
			return fmt.Errorf("add product %d: %w: %w", p.ID, domain.ErrInvalidArgument, err)
		}
		return fmt.Errorf("add product %d: %w", p.ID, err)
	}
	s.logger.Info().Int64("product_id", p.ID).Str("category", string(p.Category)).Msg("product added")
	return nil
}

// Update replaces the product with the same id. Unknown ids are ignored.
func (s *CatalogService) Update(ctx context.Context, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	found, err := s.repo.Replace(ctx, normalizeTags(p))
	if err != nil {
		return fmt.Errorf("update product %d: %w", p.ID, err)
	}
	if !found {
		s.logger.Debug().Int64("product_id", p.ID).Msg("update ignored, product not in catalog")
		return nil
	}
	s.logger.Info().Int64("product_id", p.ID).Msg("product updated")
	return nil
}

// Remove deletes a product. Unknown ids are ignored.
func (s *CatalogService) Remove(ctx context.Context, id int64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("remove product %d: %w", id, err)
	}
	if found {
		s.logger.Info().Int64("product_id", id).Msg("product removed")
	}
	return nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// Filter returns the products in category (or every category for
// domain.CategoryAll) whose name or one of whose tags contains query.
// Matching is case-insensitive for both name and tags. An empty query
// matches everything; catalog order is preserved.
func (s *CatalogService) Filter(ctx context.Context, category domain.Category, query string) ([]domain.Product, error) {
	if category == "" {
		category = domain.CategoryAll
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidArgument, category)
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("filter products: %w", err)
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !category.Matches(p.Category) {
			continue
		}
		if needle != "" && !matchesQuery(fold, p, needle) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func matchesQuery(fold cases.Caser, p domain.Product, needle string) bool {
	if strings.Contains(fold.String(p.Name), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(fold.String(tag), needle) {
			return true
		}
	}
	return false
}

func normalizeTags(p domain.Product) domain.Product {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}
