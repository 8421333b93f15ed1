// Package storage abstracts the key-value persistence collaborator the
// storefront writes through. The contract is deliberately small: string keys,
// string values, synchronous writes, no errors surfaced to callers. Readers
// of stored values are responsible for tolerating missing or malformed data.
package storage

// Fixed keys used across the storefront. Versioned so a shape change can
// abandon stale values instead of migrating them.
const (
	KeyCart              = "sc_cart_v3"
	KeyAnnouncementFlag  = "sc_announce_closed_v1"
	KeyThemePreference   = "sc_theme_v1"
	KeyLastOrderSnapshot = "sc_last_order_v1"
)

// Store is the persistence boundary injected into the cart, checkout and
// preferences services.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool)
	// Set stores the value under key, replacing any previous value.
	Set(key, value string)
	// Remove deletes the key if present.
	Remove(key string)
}
