package domain

import "fmt"

// Category groups products in the storefront navigation.
type Category string

const (
	CategoryAll         Category = "all"
	CategoryClothing    Category = "clothing"
	CategoryElectronics Category = "electronics"
	CategoryHome        Category = "home"
	CategoryAccessories Category = "accessories"
)

// Categories lists every category in navigation order, the "all" sentinel first.
var Categories = []Category{
	CategoryAll,
	CategoryClothing,
	CategoryElectronics,
	CategoryHome,
	CategoryAccessories,
}

var categoryLabels = map[Category]string{
	CategoryAll:         "전체",
	CategoryClothing:    "의류",
	CategoryElectronics: "전자제품",
	CategoryHome:        "홈/리빙",
	CategoryAccessories: "액세서리",
}

// Label returns the display name of the category.
func (c Category) Label() string {
	return categoryLabels[c]
}

// Valid reports whether c is a known category. The "all" sentinel is valid
// only as a filter, never on a product.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Matches reports whether a product in category p passes the filter c.
func (c Category) Matches(p Category) bool {
	return c == CategoryAll || c == p
}

// Product is a sellable item. Price is in minor currency units (KRW has none,
// so one unit is one won).
type Product struct {
	ID          int64    `json:"id" bson:"_id" yaml:"id"`
	Name        string   `json:"name" bson:"name" yaml:"name"`
	Price       int64    `json:"price" bson:"price" yaml:"price"`
	Category    Category `json:"category" bson:"category" yaml:"category"`
	Image       string   `json:"image" bson:"image" yaml:"image"`
	Description string   `json:"description" bson:"description" yaml:"description"`
	Tags        []string `json:"tags" bson:"tags" yaml:"tags"`
}

// Validate checks the invariants a product must hold before it enters the catalog.
func (p Product) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("%w: product id must be positive", ErrInvalidArgument)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
	}
	if p.Category == CategoryAll || !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, p.Category)
	}
	return nil
}

// Clone returns a deep copy so callers never share the tags slice.
func (p Product) Clone() Product {
	c := p
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	return c
}
