package services

import (
	"errors"
	"strings"

	"github.com/sielo-candles/storefront/internal/storage"
)

// Theme values persisted under the theme preference key.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

const announcementDismissedValue = "1"

var errPreferencesStoreRequired = errors.New("preferences: store is required")

type preferencesService struct {
	store storage.Store
}

// NewPreferencesService constructs the storage-backed preferences service.
func NewPreferencesService(store storage.Store) (PreferencesService, error) {
	if store == nil {
		return nil, errPreferencesStoreRequired
	}
	return &preferencesService{store: store}, nil
}

// Theme returns the persisted theme, defaulting to dark for missing or
// unrecognised values.
func (s *preferencesService) Theme() string {
	raw, ok := s.store.Get(storage.KeyThemePreference)
	if !ok {
		return ThemeDark
	}
	return normalizeTheme(raw)
}

// SetTheme persists the normalised mode and returns it.
func (s *preferencesService) SetTheme(mode string) string {
	normalized := normalizeTheme(mode)
	s.store.Set(storage.KeyThemePreference, normalized)
	return normalized
}

// ToggleTheme flips between dark and light, persisting the result.
func (s *preferencesService) ToggleTheme() string {
	if s.Theme() == ThemeLight {
		return s.SetTheme(ThemeDark)
	}
	return s.SetTheme(ThemeLight)
}

// AnnouncementDismissed reports whether the announcement bar was closed.
func (s *preferencesService) AnnouncementDismissed() bool {
	raw, ok := s.store.Get(storage.KeyAnnouncementFlag)
	return ok && raw == announcementDismissedValue
}

// DismissAnnouncement records the dismissal.
func (s *preferencesService) DismissAnnouncement() {
	s.store.Set(storage.KeyAnnouncementFlag, announcementDismissedValue)
}

func normalizeTheme(mode string) string {
	if strings.ToLower(strings.TrimSpace(mode)) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}
