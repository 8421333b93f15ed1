package services

import (
	"errors"

	"github.com/sielo-candles/storefront/internal/domain"
)

var errFinderCatalogRequired = errors.New("finder: catalog is required")

// Finder maps the questionnaire state to a single recommended product through
// a fixed decision list. Rule order matters: a cold preference wins over
// everything, then a night space, then a bold mood; only when none of those
// fire does the warm product win. Reordering the checks changes results for
// mixed selections, so the cascade must stay as published.
type Finder struct {
	catalog ProductResolver
}

// NewFinder constructs the recommendation finder.
func NewFinder(catalog ProductResolver) (*Finder, error) {
	if catalog == nil {
		return nil, errFinderCatalogRequired
	}
	return &Finder{catalog: catalog}, nil
}

// Recommend evaluates the decision list against the selection. ok is false
// only when the catalog is missing a product for the resolved family.
func (f *Finder) Recommend(sel domain.FinderSelection) (domain.Product, bool) {
	family := domain.FamilyWarm
	switch {
	case sel.Preference == domain.PreferenceCold:
		family = domain.FamilyCold
	case sel.Space == domain.SpaceNight:
		family = domain.FamilyCold
	case sel.Mood == domain.MoodBold:
		family = domain.FamilyCold
	}
	return f.catalog.ByFamily(family)
}
