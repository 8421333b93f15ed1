package services

import (
	"errors"
	"strings"

	"github.com/sielo-candles/storefront/internal/domain"
)

// Pricing defaults. The threshold, surcharge and fallback rate are injected
// through PricingEngineDeps so deployments can tune them without touching the
// computation.
const (
	DefaultFreeShippingThreshold = 60.0
	DefaultShippingSurcharge     = 5.90
	DefaultTaxRate               = 0.21
	defaultCountryCode           = "IT"
)

var errPricingCatalogRequired = errors.New("pricing engine: catalog is required")

// defaultTaxRates maps destination country codes to VAT rates. Shipping and
// packaging are taxed jointly with goods in this model, so the rate applies
// to subtotal plus shipping.
func defaultTaxRates() map[string]float64 {
	return map[string]float64{
		"IT": 0.22,
		"NL": 0.21,
		"DE": 0.19,
		"FR": 0.20,
		"ES": 0.21,
		"CH": 0.077,
	}
}

// PricingEngineDeps configures the totals computation. Zero values fall back
// to the published defaults.
type PricingEngineDeps struct {
	Catalog               ProductResolver
	FreeShippingThreshold float64
	ShippingSurcharge     float64
	DefaultRate           float64
	TaxRates              map[string]float64
}

// PricingEngine turns a cart and destination country into a totals breakdown.
// All methods are pure and deterministic.
type PricingEngine struct {
	catalog     ProductResolver
	threshold   float64
	surcharge   float64
	defaultRate float64
	rates       map[string]float64
}

// NewPricingEngine validates dependencies and applies defaults.
func NewPricingEngine(deps PricingEngineDeps) (*PricingEngine, error) {
	if deps.Catalog == nil {
		return nil, errPricingCatalogRequired
	}

	threshold := deps.FreeShippingThreshold
	if threshold <= 0 {
		threshold = DefaultFreeShippingThreshold
	}
	surcharge := deps.ShippingSurcharge
	if surcharge <= 0 {
		surcharge = DefaultShippingSurcharge
	}
	rate := deps.DefaultRate
	if rate <= 0 {
		rate = DefaultTaxRate
	}
	rates := deps.TaxRates
	if rates == nil {
		rates = defaultTaxRates()
	}

	return &PricingEngine{
		catalog:     deps.Catalog,
		threshold:   threshold,
		surcharge:   surcharge,
		defaultRate: rate,
		rates:       rates,
	}, nil
}

// TaxRate looks up the VAT rate for a country code, falling back to the
// default rate for unknown codes. An empty code means the domestic default.
func (e *PricingEngine) TaxRate(countryCode string) float64 {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		code = defaultCountryCode
	}
	if rate, ok := e.rates[code]; ok {
		return rate
	}
	return e.defaultRate
}

// ComputeTotals prices the cart for the destination country. Each stage is
// rounded independently: subtotal first, then tax on (subtotal + shipping),
// then the grand total.
func (e *PricingEngine) ComputeTotals(cart domain.Cart, countryCode string) domain.TotalsBreakdown {
	var sum float64
	for _, line := range cart.Lines {
		product, ok := e.catalog.Get(line.ProductID)
		if !ok {
			continue
		}
		sum += product.Price * float64(line.Quantity)
	}
	subtotal := domain.Round2(sum)

	shipping := e.surcharge
	if subtotal >= e.threshold || subtotal == 0 {
		shipping = 0
	}

	tax := domain.Round2((subtotal + shipping) * e.TaxRate(countryCode))
	total := domain.Round2(subtotal + shipping + tax)

	return domain.TotalsBreakdown{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    total,
	}
}

// FreeShippingProgress reports how close the subtotal is to free shipping.
// Remaining is zero once the threshold is met.
func (e *PricingEngine) FreeShippingProgress(totals domain.TotalsBreakdown) domain.FreeShippingProgress {
	percent := domain.Clamp(totals.Subtotal/e.threshold*100, 0, 100)
	remaining := e.threshold - totals.Subtotal
	if remaining < 0 {
		remaining = 0
	}
	return domain.FreeShippingProgress{
		Percent:   percent,
		Remaining: domain.Round2(remaining),
	}
}

// FreeShippingThreshold exposes the configured threshold for display copy.
func (e *PricingEngine) FreeShippingThreshold() float64 {
	return e.threshold
}
