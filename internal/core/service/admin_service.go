package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/core/ports"
)

// DraftImage is the placeholder picture of a product that has not been
// given one yet.
const DraftImage = "https://picsum.photos/400/600"

// AdminService implements ports.AdminService on top of the catalog.
// Access control is the caller's job.
type AdminService struct {
	catalog  ports.CatalogService
	confirms ports.ConfirmationStore
	ttl      time.Duration
	logger   zerolog.Logger
	now      func() time.Time

	mu     sync.Mutex
	lastID int64
}

func NewAdminService(catalog ports.CatalogService, confirms ports.ConfirmationStore, confirmTTL time.Duration, logger zerolog.Logger) *AdminService {
	if confirmTTL <= 0 {
		confirmTTL = defaultConfirmTTL
	}
	return &AdminService{
		catalog:  catalog,
		confirms: confirms,
		ttl:      confirmTTL,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AdminService) List(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.List(ctx)
}

// Draft returns an unsaved product with a fresh id. Ids come from the wall
// clock in milliseconds and never repeat within the process.
func (s *AdminService) Draft(_ context.Context) domain.Product {
	return domain.Product{
		ID:       s.nextID(),
		Category: domain.CategoryClothing,
		Image:    DraftImage,
		Tags:     []string{},
	}
}

func (s *AdminService) nextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Edit loads a product into the editor.
func (s *AdminService) Edit(ctx context.Context, id int64) (*domain.Product, error) {
	return s.catalog.Get(ctx, id)
}

// Save inserts p when its id is new to the catalog and replaces the stored
// product otherwise.
func (s *AdminService) Save(ctx context.Context, p domain.Product) (*ports.SaveResult, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, domain.NewValidationError("name", "상품명을 입력해주세요.")
	}
	if p.Image == "" {
		p.Image = DraftImage
	}
	p.Tags = cleanTags(p.Tags)

	_, err := s.catalog.Get(ctx, p.ID)
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		if err := s.catalog.Add(ctx, p); err != nil {
			return nil, err
		}
		return &ports.SaveResult{Product: p, Created: true}, nil
	case err != nil:
		return nil, err
	}

	if err := s.catalog.Update(ctx, p); err != nil {
		return nil, err
	}
	return &ports.SaveResult{Product: p}, nil
}

// RequestDelete issues the confirmation for removing product id.
func (s *AdminService) RequestDelete(ctx context.Context, clientID string, id int64) (*ports.Confirmation, error) {
	if _, err := s.catalog.Get(ctx, id); err != nil {
		return nil, err
	}
	action := deleteAction(id)
	token, err := s.confirms.Issue(ctx, clientID, action, s.ttl)
	if err != nil {
		return nil, err
	}
	return &ports.Confirmation{
		Token:     token,
		Action:    action,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}, nil
}

// ConfirmDelete removes product id once the client echoes the token issued
// for that product.
func (s *AdminService) ConfirmDelete(ctx context.Context, clientID string, id int64, token string) error {
	ok, err := s.confirms.Consume(ctx, clientID, deleteAction(id), token)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrConfirmationRequired
	}
	if err := s.catalog.Remove(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("client_id", clientID).Int64("product_id", id).Msg("product deleted by administrator")
	return nil
}

func deleteAction(id int64) string {
	return ports.ActionDeleteProduct + ":" + strconv.FormatInt(id, 10)
}

// cleanTags trims tags and drops empty ones, as typed into the
// comma-separated tags field.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
