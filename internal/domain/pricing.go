package domain

import "math"

// TotalsBreakdown captures the monetary results of pricing a cart. Amounts are
// EUR, each stage already rounded to 2 decimals.
type TotalsBreakdown struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// FreeShippingProgress describes how far a cart is from the free-shipping
// threshold.
type FreeShippingProgress struct {
	Percent   float64 `json:"percent"`
	Remaining float64 `json:"remaining"`
}

// Round2 rounds to 2 decimal places, ties away from zero. Subtotal, tax and
// total are each rounded independently at their own stage; replacing this
// with a single end-to-end rounding changes published totals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp constrains v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
