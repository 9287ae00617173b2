package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lumina-market/storefront/internal/core/domain"
)

func TestCatalogService_Filter(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		category domain.Category
		query    string
		want     []int64
	}{
		{"all", domain.CategoryAll, "", []int64{1, 2, 3, 4, 5, 6, 7, 8}},
		{"empty category means all", "", "", []int64{1, 2, 3, 4, 5, 6, 7, 8}},
		{"by category", domain.CategoryClothing, "", []int64{1, 5}},
		{"by name", domain.CategoryAll, "헤드폰", []int64{2}},
		{"by tag", domain.CategoryAll, "인테리어", []int64{4, 8}},
		{"category and query", domain.CategoryHome, "침실", []int64{8}},
		{"no match", domain.CategoryElectronics, "가죽", []int64{}},
		{"query is trimmed", domain.CategoryAll, "  헤드폰 ", []int64{2}},
		{"blank query matches all", domain.CategoryClothing, "   ", []int64{1, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Filter(ctx, tt.category, tt.query)
			if err != nil {
				t.Fatalf("Filter returned error: %v", err)
			}
			if !equalIDs(ids(got), tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, ids(got))
			}
		})
	}
}

func TestCatalogService_Filter_CaseInsensitive(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	lamp := domain.Product{ID: 100, Name: "Smart Lamp", Price: 1000, Category: domain.CategoryHome, Tags: []string{"LED"}}
	if err := svc.Add(ctx, lamp); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	for _, q := range []string{"smart", "SMART", "led", "Led"} {
		got, err := svc.Filter(ctx, domain.CategoryAll, q)
		if err != nil {
			t.Fatalf("Filter(%q) returned error: %v", q, err)
		}
		if !equalIDs(ids(got), []int64{100}) {
			t.Fatalf("Filter(%q): expected [100], got %v", q, ids(got))
		}
	}
}

func TestCatalogService_Filter_UnknownCategory(t *testing.T) {
	svc := newTestCatalog(t)
	if _, err := svc.Filter(context.Background(), "toys", ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCatalogService_Add_PrependsAndRejectsDuplicates(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	p := domain.Product{ID: 9, Name: "새 상품", Price: 5000, Category: domain.CategoryAccessories}
	if err := svc.Add(ctx, p); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	all, _ := svc.List(ctx)
	if len(all) != 9 || all[0].ID != 9 {
		t.Fatalf("expected new product first, got %v", ids(all))
	}
	if all[0].Tags == nil {
		t.Fatalf("expected tags normalized to empty slice")
	}

	err := svc.Add(ctx, p)
	if !errors.Is(err, domain.ErrInvalidArgument) || !errors.Is(err, domain.ErrDuplicateProduct) {
		t.Fatalf("expected duplicate to be an invalid argument, got %v", err)
	}
}

func TestCatalogService_Add_Validation(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	bad := []domain.Product{
		{ID: 0, Name: "x", Category: domain.CategoryHome},
		{ID: 10, Name: "x", Price: -1, Category: domain.CategoryHome},
		{ID: 11, Name: "x", Category: domain.CategoryAll},
		{ID: 12, Name: "x", Category: "toys"},
	}
	for _, p := range bad {
		if err := svc.Add(ctx, p); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("product %+v: expected ErrInvalidArgument, got %v", p, err)
		}
	}
}

func TestCatalogService_UpdateAndRemove(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	p, err := svc.Get(ctx, 3)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	p.Price = 99000
	if err := svc.Update(ctx, *p); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	got, _ := svc.Get(ctx, 3)
	if got.Price != 99000 {
		t.Fatalf("expected updated price, got %d", got.Price)
	}
	all, _ := svc.List(ctx)
	if all[2].ID != 3 {
		t.Fatalf("expected update to keep position, got %v", ids(all))
	}

	if err := svc.Remove(ctx, 3); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := svc.Get(ctx, 3); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound after remove, got %v", err)
	}
	listed, err := svc.Filter(ctx, domain.CategoryAll, "")
	if err != nil {
		t.Fatalf("Filter returned error: %v", err)
	}
	if !equalIDs(ids(listed), []int64{1, 2, 4, 5, 6, 7, 8}) {
		t.Fatalf("expected removed product to be gone from listing, got %v", ids(listed))
	}
}

func TestCatalogService_UnknownIDsAreIgnored(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	ghost := domain.Product{ID: 404, Name: "ghost", Category: domain.CategoryHome}
	if err := svc.Update(ctx, ghost); err != nil {
		t.Fatalf("Update of unknown id returned error: %v", err)
	}
	if err := svc.Remove(ctx, 404); err != nil {
		t.Fatalf("Remove of unknown id returned error: %v", err)
	}
	all, _ := svc.List(ctx)
	if len(all) != 8 {
		t.Fatalf("expected catalog unchanged, got %d products", len(all))
	}
}
