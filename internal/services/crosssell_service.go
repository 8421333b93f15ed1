package services

import (
	"errors"

	"github.com/sielo-candles/storefront/internal/domain"
)

var errCrossSellCatalogRequired = errors.New("cross-sell: catalog is required")

// CrossSellSelector suggests the sibling product the customer has not bought
// yet. The rule is defined for the two-product catalog only: with any other
// catalog size no suggestion is made.
type CrossSellSelector struct {
	catalog ProductResolver
}

// NewCrossSellSelector constructs the selector.
func NewCrossSellSelector(catalog ProductResolver) (*CrossSellSelector, error) {
	if catalog == nil {
		return nil, errCrossSellCatalogRequired
	}
	return &CrossSellSelector{catalog: catalog}, nil
}

// Pick returns the suggested product. ok is false when the cart is empty,
// contains both products, or the catalog does not pair exactly two products.
func (s *CrossSellSelector) Pick(cart domain.Cart) (domain.Product, bool) {
	if s == nil || s.catalog == nil || s.catalog.Len() != 2 {
		return domain.Product{}, false
	}

	pair := s.catalog.List()
	first, second := pair[0], pair[1]

	hasFirst := cart.Contains(first.ID)
	hasSecond := cart.Contains(second.ID)

	switch {
	case hasFirst && !hasSecond:
		return second, true
	case hasSecond && !hasFirst:
		return first, true
	default:
		return domain.Product{}, false
	}
}
