package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/sielo-candles/storefront/internal/domain"
	"github.com/sielo-candles/storefront/internal/storage"
)

const (
	minLineQuantity = 1
	maxLineQuantity = 99
)

var (
	errCartStoreRequired   = errors.New("cart service: store is required")
	errCartCatalogRequired = errors.New("cart service: catalog is required")
)

// CartServiceDeps wires the persistence and catalog dependencies for cart
// operations. OnChange, when set, fires after every persisted mutation so
// dependents (totals, cross-sell) can refresh.
type CartServiceDeps struct {
	Store    storage.Store
	Catalog  ProductResolver
	Logger   EventLogger
	OnChange func()
}

type cartService struct {
	store    storage.Store
	catalog  ProductResolver
	logger   EventLogger
	onChange func()
	cart     domain.Cart
}

// NewCartService restores the persisted cart and returns a CartService.
// Restoration never fails: malformed persisted state falls back to an empty
// cart, and lines referencing unknown products are dropped.
func NewCartService(deps CartServiceDeps) (CartService, error) {
	if deps.Store == nil {
		return nil, errCartStoreRequired
	}
	if deps.Catalog == nil {
		return nil, errCartCatalogRequired
	}

	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	onChange := deps.OnChange
	if onChange == nil {
		onChange = func() {}
	}

	s := &cartService{
		store:    deps.Store,
		catalog:  deps.Catalog,
		logger:   logger,
		onChange: onChange,
	}
	s.cart = s.load()
	return s, nil
}

// load reads the persisted representation, tolerating every malformed shape
// by substituting defaults. Lines survive only when their product resolves
// and their quantity coerces to a positive number.
func (s *cartService) load() domain.Cart {
	empty := domain.Cart{Lines: []domain.CartLine{}}

	raw, ok := s.store.Get(storage.KeyCart)
	if !ok || strings.TrimSpace(raw) == "" {
		return empty
	}

	var persisted struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil || persisted.Items == nil {
		s.logger(context.Background(), "cart.load_malformed", map[string]any{
			"key": storage.KeyCart,
		})
		return empty
	}

	lines := make([]domain.CartLine, 0, len(persisted.Items))
	for _, item := range persisted.Items {
		var entry struct {
			ID  string `json:"id"`
			Qty any    `json:"qty"`
		}
		if err := json.Unmarshal(item, &entry); err != nil {
			continue
		}
		if !s.catalog.Has(entry.ID) {
			continue
		}
		qty, ok := coerceQuantity(entry.Qty)
		if !ok {
			continue
		}
		if containsLine(lines, entry.ID) {
			continue
		}
		lines = append(lines, domain.CartLine{ProductID: entry.ID, Quantity: qty})
	}
	return domain.Cart{Lines: lines}
}

// coerceQuantity accepts JSON numbers and numeric strings, rejecting
// everything that is not a positive number, and clamps into range.
func coerceQuantity(v any) (int, bool) {
	var qty float64
	switch n := v.(type) {
	case float64:
		qty = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		qty = parsed
	default:
		return 0, false
	}
	if qty <= 0 {
		return 0, false
	}
	return clampQuantity(int(qty)), true
}

func containsLine(lines []domain.CartLine, productID string) bool {
	for _, line := range lines {
		if line.ProductID == productID {
			return true
		}
	}
	return false
}

// clampQuantity normalises into [1, 99]. Idempotent.
func clampQuantity(q int) int {
	if q < minLineQuantity {
		return minLineQuantity
	}
	if q > maxLineQuantity {
		return maxLineQuantity
	}
	return q
}

func (s *cartService) persist() {
	raw, err := json.Marshal(s.cart)
	if err != nil {
		s.logger(context.Background(), "cart.persist_failed", map[string]any{
			"error": err.Error(),
		})
		return
	}
	s.store.Set(storage.KeyCart, string(raw))
}

func (s *cartService) mutated() {
	s.persist()
	s.onChange()
}

func (s *cartService) Cart() domain.Cart {
	return s.cart.Clone()
}

func (s *cartService) Add(productID string, quantity int) domain.Cart {
	id := strings.TrimSpace(productID)
	if !s.catalog.Has(id) {
		return s.Cart()
	}
	quantity = clampQuantity(quantity)

	merged := false
	for i, line := range s.cart.Lines {
		if line.ProductID == id {
			s.cart.Lines[i].Quantity = clampQuantity(line.Quantity + quantity)
			merged = true
			break
		}
	}
	if !merged {
		s.cart.Lines = append(s.cart.Lines, domain.CartLine{ProductID: id, Quantity: quantity})
	}

	s.mutated()
	return s.Cart()
}

func (s *cartService) SetQuantity(productID string, quantity int) domain.Cart {
	id := strings.TrimSpace(productID)
	quantity = clampQuantity(quantity)

	for i, line := range s.cart.Lines {
		if line.ProductID == id {
			s.cart.Lines[i].Quantity = quantity
			s.mutated()
			break
		}
	}
	return s.Cart()
}

func (s *cartService) Remove(productID string) domain.Cart {
	id := strings.TrimSpace(productID)
	for i, line := range s.cart.Lines {
		if line.ProductID == id {
			s.cart.Lines = append(s.cart.Lines[:i], s.cart.Lines[i+1:]...)
			s.mutated()
			break
		}
	}
	return s.Cart()
}

func (s *cartService) Clear() domain.Cart {
	s.cart.Lines = []domain.CartLine{}
	s.mutated()
	return s.Cart()
}

func (s *cartService) Count() int {
	return s.cart.Count()
}
