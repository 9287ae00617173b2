package seed

import (
	"errors"
	"testing"

	"github.com/lumina-market/storefront/internal/core/domain"
)

func TestProducts_Default(t *testing.T) {
	products, err := Products("")
	if err != nil {
		t.Fatalf("load default seed: %v", err)
	}
	if len(products) != 8 {
		t.Fatalf("expected 8 products, got %d", len(products))
	}
	if products[0].ID != 1 || products[0].Category != domain.CategoryClothing {
		t.Fatalf("unexpected first product: %+v", products[0])
	}
	if len(products[1].Tags) != 3 || products[1].Tags[1] != "헤드폰" {
		t.Fatalf("tags not decoded: %+v", products[1].Tags)
	}
}

func TestParse_RejectsDuplicateIDs(t *testing.T) {
	doc := []byte(`
products:
  - {id: 1, name: a, price: 1, category: home}
  - {id: 1, name: b, price: 2, category: home}
`)
	if _, err := Parse(doc); !errors.Is(err, domain.ErrDuplicateProduct) {
		t.Fatalf("expected ErrDuplicateProduct, got %v", err)
	}
}

func TestParse_RejectsUnknownCategory(t *testing.T) {
	doc := []byte(`
products:
  - {id: 1, name: a, price: 1, category: all}
`)
	if _, err := Parse(doc); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestProducts_MissingFile(t *testing.T) {
	if _, err := Products("/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
