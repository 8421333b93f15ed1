package services

import (
	"testing"

	"github.com/sielo-candles/storefront/internal/catalog"
	"github.com/sielo-candles/storefront/internal/domain"
)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]domain.Product{
		{
			ID:     "butter",
			Name:   "Butter",
			Price:  24.00,
			Family: domain.FamilyWarm,
			SKU:    "SC-BTR-220",
			Images: []string{"butter_1", "butter_2", "butter_3"},
		},
		{
			ID:     "berry",
			Name:   "Berry",
			Price:  24.00,
			Family: domain.FamilyCold,
			SKU:    "SC-BRY-220",
			Images: []string{"berry_1", "berry_2", "berry_3"},
		},
	})
	if err != nil {
		t.Fatalf("catalog.New error: %v", err)
	}
	return c
}

func newBoundaryCatalog(underPrice, atPrice float64) (*catalog.Catalog, error) {
	return catalog.New([]domain.Product{
		{ID: "under", Name: "Under", Price: underPrice, Family: domain.FamilyWarm},
		{ID: "at", Name: "At", Price: atPrice, Family: domain.FamilyCold},
	})
}

func cartOf(lines ...domain.CartLine) domain.Cart {
	return domain.Cart{Lines: lines}
}
