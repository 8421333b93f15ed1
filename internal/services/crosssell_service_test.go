package services

import (
	"testing"

	"github.com/sielo-candles/storefront/internal/catalog"
	"github.com/sielo-candles/storefront/internal/domain"
)

func TestPickSuggestsMissingSibling(t *testing.T) {
	selector, err := NewCrossSellSelector(newTestCatalog(t))
	if err != nil {
		t.Fatalf("NewCrossSellSelector error: %v", err)
	}

	cases := []struct {
		name   string
		cart   domain.Cart
		wantID string
		wantOK bool
	}{
		{
			name:   "butter only suggests berry",
			cart:   cartOf(domain.CartLine{ProductID: "butter", Quantity: 1}),
			wantID: "berry",
			wantOK: true,
		},
		{
			name:   "berry only suggests butter",
			cart:   cartOf(domain.CartLine{ProductID: "berry", Quantity: 3}),
			wantID: "butter",
			wantOK: true,
		},
		{
			name:   "both present suggests nothing",
			cart:   cartOf(domain.CartLine{ProductID: "butter", Quantity: 1}, domain.CartLine{ProductID: "berry", Quantity: 1}),
			wantOK: false,
		},
		{
			name:   "empty cart suggests nothing",
			cart:   cartOf(),
			wantOK: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := selector.Pick(tc.cart)
			if ok != tc.wantOK {
				t.Fatalf("ok: want %v, got %v", tc.wantOK, ok)
			}
			if ok && got.ID != tc.wantID {
				t.Fatalf("product: want %s, got %s", tc.wantID, got.ID)
			}
		})
	}
}

func TestPickUndefinedOutsideTwoProductCatalog(t *testing.T) {
	single, err := catalog.New([]domain.Product{
		{ID: "solo", Name: "Solo", Price: 10, Family: domain.FamilyWarm},
	})
	if err != nil {
		t.Fatalf("catalog.New error: %v", err)
	}

	selector, err := NewCrossSellSelector(single)
	if err != nil {
		t.Fatalf("NewCrossSellSelector error: %v", err)
	}

	if _, ok := selector.Pick(cartOf(domain.CartLine{ProductID: "solo", Quantity: 1})); ok {
		t.Fatal("the sibling rule is defined for exactly two products")
	}
}
