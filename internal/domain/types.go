package domain

import (
	"strings"
	"time"
)

// ThermalFamily groups products by scent temperature.
type ThermalFamily string

const (
	// FamilyWarm marks gourmand, amber-leaning scents.
	FamilyWarm ThermalFamily = "warm"
	// FamilyCold marks resinous, mineral-leaning scents.
	FamilyCold ThermalFamily = "cold"
)

// Valid reports whether the family is one of the known tags.
func (f ThermalFamily) Valid() bool {
	return f == FamilyWarm || f == FamilyCold
}

// Product is an immutable catalog record, seeded at process start.
type Product struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Price       float64       `yaml:"price"`
	Family      ThermalFamily `yaml:"family"`
	Size        string        `yaml:"size"`
	Burn        string        `yaml:"burn"`
	Notes       string        `yaml:"notes"`
	Description string        `yaml:"description"`
	Tag         string        `yaml:"tag"`
	SKU         string        `yaml:"sku"`
	Images      []string      `yaml:"images"`
	Pack        string        `yaml:"pack"`
}

// CoverImage returns the canonical image identifier, or "" when the product
// carries no images.
func (p Product) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// CartLine is one (product, quantity) pair in the cart.
type CartLine struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"qty"`
}

// Cart is an ordered sequence of lines, at most one per product.
type Cart struct {
	Lines []CartLine `json:"items"`
}

// IsEmpty reports whether the cart holds no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Count sums all line quantities (badge display).
func (c Cart) Count() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// Contains reports whether the cart holds a line for the product.
func (c Cart) Contains(productID string) bool {
	return c.indexOf(productID) >= 0
}

func (c Cart) indexOf(productID string) int {
	target := strings.TrimSpace(productID)
	if target == "" {
		return -1
	}
	for i, line := range c.Lines {
		if line.ProductID == target {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (c Cart) Clone() Cart {
	if len(c.Lines) == 0 {
		return Cart{Lines: []CartLine{}}
	}
	dup := make([]CartLine, len(c.Lines))
	copy(dup, c.Lines)
	return Cart{Lines: dup}
}

// Finder facet values. Each facet is a single choice with a fixed default.
const (
	MoodCalm = "calm"
	MoodBold = "bold"

	SpaceHome  = "home"
	SpaceNight = "night"

	PreferenceWarm = "warm"
	PreferenceCold = "cold"
)

// FinderSelection holds the questionnaire state. It is never persisted.
type FinderSelection struct {
	Mood       string `json:"mood"`
	Space      string `json:"space"`
	Preference string `json:"preference"`
}

// DefaultFinderSelection returns the initial questionnaire state.
func DefaultFinderSelection() FinderSelection {
	return FinderSelection{
		Mood:       MoodCalm,
		Space:      SpaceHome,
		Preference: PreferenceWarm,
	}
}

// Order is the snapshot persisted after a successful checkout submission.
type Order struct {
	ID        string          `json:"orderId"`
	RecordID  string          `json:"recordId"`
	CreatedAt time.Time       `json:"createdAt"`
	Email     string          `json:"email"`
	Items     []CartLine      `json:"items"`
	Totals    TotalsBreakdown `json:"totals"`
}
