// Package catalog provides the immutable product lookup consumed by the cart
// and pricing services. Products are seeded once at construction and never
// mutated afterwards.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sielo-candles/storefront/internal/domain"
)

//go:embed seed/catalog.yaml
var embeddedSeed []byte

var (
	// ErrEmptyCatalog indicates the seed contained no products.
	ErrEmptyCatalog = errors.New("catalog: no products in seed")
	// ErrInvalidSeed indicates a malformed or inconsistent seed document.
	ErrInvalidSeed = errors.New("catalog: invalid seed")
)

type seedDocument struct {
	Products []domain.Product `yaml:"products"`
}

// Catalog is a read-only product index. Lookup misses return ok=false rather
// than errors.
type Catalog struct {
	ordered []domain.Product
	byID    map[string]domain.Product
}

// Load builds a catalog from the embedded seed document.
func Load() (*Catalog, error) {
	return parse(embeddedSeed)
}

// LoadFile builds a catalog from an operator-supplied YAML file, used when
// config overrides the embedded seed.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read seed file: %w", err)
	}
	return parse(raw)
}

// New builds a catalog directly from product records. Intended for tests.
func New(products []domain.Product) (*Catalog, error) {
	return build(products)
}

func parse(raw []byte) (*Catalog, error) {
	var doc seedDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return build(doc.Products)
}

func build(products []domain.Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}

	ordered := make([]domain.Product, 0, len(products))
	byID := make(map[string]domain.Product, len(products))
	for i, p := range products {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("%w: product %d has no id", ErrInvalidSeed, i)
		}
		if _, exists := byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate product id %q", ErrInvalidSeed, p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("%w: product %q has negative price", ErrInvalidSeed, p.ID)
		}
		if !p.Family.Valid() {
			return nil, fmt.Errorf("%w: product %q has unknown family %q", ErrInvalidSeed, p.ID, p.Family)
		}
		p.Name = strings.TrimSpace(p.Name)
		p.SKU = strings.TrimSpace(p.SKU)
		ordered = append(ordered, p)
		byID[p.ID] = p
	}

	return &Catalog{ordered: ordered, byID: byID}, nil
}

// Get returns the product for id. Unknown ids yield ok=false.
func (c *Catalog) Get(id string) (domain.Product, bool) {
	if c == nil {
		return domain.Product{}, false
	}
	p, ok := c.byID[strings.TrimSpace(id)]
	return p, ok
}

// Has reports whether the id resolves to a product.
func (c *Catalog) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// List returns the products in seed order. The slice is a copy.
func (c *Catalog) List() []domain.Product {
	if c == nil {
		return nil
	}
	dup := make([]domain.Product, len(c.ordered))
	copy(dup, c.ordered)
	return dup
}

// Len returns the number of seeded products.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ordered)
}

// ByFamily returns the first product tagged with the given family, in seed
// order. Used by the finder to resolve the warm/cold recommendation targets.
func (c *Catalog) ByFamily(family domain.ThermalFamily) (domain.Product, bool) {
	if c == nil {
		return domain.Product{}, false
	}
	for _, p := range c.ordered {
		if p.Family == family {
			return p, true
		}
	}
	return domain.Product{}, false
}
