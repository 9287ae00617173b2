package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/infrastructure/db/memory"
)

func newTestAdminService(t *testing.T) (*AdminService, *CatalogService) {
	t.Helper()
	catalog := newTestCatalog(t)
	return NewAdminService(catalog, memory.NewConfirmationStore(), time.Minute, zerolog.Nop()), catalog
}

func TestAdminService_Draft(t *testing.T) {
	svc, _ := newTestAdminService(t)
	fixed := time.UnixMilli(1_700_000_000_000)
	svc.now = func() time.Time { return fixed }

	a := svc.Draft(context.Background())
	b := svc.Draft(context.Background())
	if a.ID != fixed.UnixMilli() || b.ID != a.ID+1 {
		t.Fatalf("expected monotonic ids from the clock, got %d then %d", a.ID, b.ID)
	}
	if a.Category != domain.CategoryClothing || a.Image != DraftImage || a.Tags == nil || len(a.Tags) != 0 {
		t.Fatalf("unexpected draft %+v", a)
	}
}

func TestAdminService_Save_CreatesThenUpdates(t *testing.T) {
	svc, catalog := newTestAdminService(t)
	ctx := context.Background()

	draft := svc.Draft(ctx)
	draft.Name = "  린넨 셔츠 "
	draft.Price = 39000
	draft.Tags = []string{" 여름 ", "", "린넨"}

	res, err := svc.Save(ctx, draft)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if !res.Created || res.Product.Name != "린넨 셔츠" {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.Product.Tags) != 2 || res.Product.Tags[0] != "여름" {
		t.Fatalf("expected cleaned tags, got %q", res.Product.Tags)
	}
	all, _ := catalog.List(ctx)
	if all[0].ID != draft.ID {
		t.Fatalf("expected new product first, got %v", ids(all))
	}

	res.Product.Price = 35000
	res2, err := svc.Save(ctx, res.Product)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if res2.Created {
		t.Fatalf("expected update, got create")
	}
	got, _ := svc.Edit(ctx, draft.ID)
	if got.Price != 35000 {
		t.Fatalf("expected updated price, got %d", got.Price)
	}
	all, _ = catalog.List(ctx)
	if len(all) != 9 {
		t.Fatalf("expected 9 products, got %d", len(all))
	}
}

func TestAdminService_Save_Validation(t *testing.T) {
	svc, _ := newTestAdminService(t)
	ctx := context.Background()

	draft := svc.Draft(ctx)
	var verr *domain.ValidationError
	if _, err := svc.Save(ctx, draft); !errors.As(err, &verr) || verr.Field != "name" {
		t.Fatalf("expected name validation error, got %v", err)
	}

	draft.Name = "x"
	draft.Price = -1
	if _, err := svc.Save(ctx, draft); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative price, got %v", err)
	}
}

func TestAdminService_Delete_RequiresConfirmation(t *testing.T) {
	svc, catalog := newTestAdminService(t)
	ctx := context.Background()

	if _, err := svc.RequestDelete(ctx, "admin", 404); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	conf, err := svc.RequestDelete(ctx, "admin", 5)
	if err != nil {
		t.Fatalf("RequestDelete returned error: %v", err)
	}
	if conf.Action != "delete_product:5" {
		t.Fatalf("unexpected action %q", conf.Action)
	}

	if err := svc.ConfirmDelete(ctx, "admin", 6, conf.Token); !errors.Is(err, domain.ErrConfirmationRequired) {
		t.Fatalf("expected token bound to product 5, got %v", err)
	}
	if _, err := catalog.Get(ctx, 5); err != nil {
		t.Fatalf("expected product 5 to survive, got %v", err)
	}

	if err := svc.ConfirmDelete(ctx, "admin", 5, conf.Token); err != nil {
		t.Fatalf("ConfirmDelete returned error: %v", err)
	}
	if _, err := catalog.Get(ctx, 5); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected product 5 removed, got %v", err)
	}
}
