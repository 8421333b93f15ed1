package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sielo-candles/storefront/internal/catalog"
	"github.com/sielo-candles/storefront/internal/content"
	"github.com/sielo-candles/storefront/internal/platform/config"
	"github.com/sielo-candles/storefront/internal/platform/observability"
	"github.com/sielo-candles/storefront/internal/services"
	"github.com/sielo-candles/storefront/internal/storage"
)

// Services bundles the service-layer contracts that handlers rely upon. Concrete
// implementations are assembled via dependency injection in NewContainer.
type Services struct {
	Cart        services.CartService
	Pricing     *services.PricingEngine
	CrossSell   *services.CrossSellSelector
	Finder      *services.Finder
	Checkout    services.CheckoutService
	Preferences services.PreferencesService
}

// Container wires the catalog, persistent store, content library, and services
// for runtime use.
type Container struct {
	Config   config.Config
	Catalog  *catalog.Catalog
	Store    storage.Store
	Guides   *content.Library
	Services Services
}

// NewContainer constructs the runtime dependencies. Tests can bypass it and
// assemble services over an in-memory store directly.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	events := observability.EventLogger(logger)

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	store := storage.NewFileStore(cfg.Storage.StatePath, events)

	var guides *content.Library
	if cfg.Features.EnableGuides {
		guides, err = content.Load()
		if err != nil {
			return nil, fmt.Errorf("load guides: %w", err)
		}
	}

	svc, err := buildServices(cfg, cat, store, events)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:   cfg,
		Catalog:  cat,
		Store:    store,
		Guides:   guides,
		Services: svc,
	}, nil
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.SeedFile != "" {
		return catalog.LoadFile(cfg.Catalog.SeedFile)
	}
	return catalog.Load()
}

func buildServices(cfg config.Config, cat *catalog.Catalog, store storage.Store, events services.EventLogger) (Services, error) {
	var svc Services

	carts, err := services.NewCartService(services.CartServiceDeps{
		Store:   store,
		Catalog: cat,
		Logger:  events,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build cart service: %w", err)
	}
	svc.Cart = carts

	pricer, err := services.NewPricingEngine(services.PricingEngineDeps{
		Catalog:               cat,
		FreeShippingThreshold: cfg.Pricing.FreeShippingThreshold,
		ShippingSurcharge:     cfg.Pricing.ShippingSurcharge,
		DefaultRate:           cfg.Pricing.DefaultTaxRate,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build pricing engine: %w", err)
	}
	svc.Pricing = pricer

	if cfg.Features.EnableCrossSell {
		crossSell, err := services.NewCrossSellSelector(cat)
		if err != nil {
			return Services{}, fmt.Errorf("build cross-sell selector: %w", err)
		}
		svc.CrossSell = crossSell
	}

	finder, err := services.NewFinder(cat)
	if err != nil {
		return Services{}, fmt.Errorf("build finder: %w", err)
	}
	svc.Finder = finder

	checkout, err := services.NewCheckoutService(services.CheckoutServiceDeps{
		Carts:  carts,
		Pricer: pricer,
		Store:  store,
		Logger: events,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build checkout service: %w", err)
	}
	svc.Checkout = checkout

	prefs, err := services.NewPreferencesService(store)
	if err != nil {
		return Services{}, fmt.Errorf("build preferences service: %w", err)
	}
	svc.Preferences = prefs

	return svc, nil
}
