package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sielo-candles/storefront/internal/platform/httpx"
	"github.com/sielo-candles/storefront/internal/services"
)

const maxPreferencesBodySize = 2 * 1024

// PreferenceHandlers exposes theme and announcement persistence.
type PreferenceHandlers struct {
	prefs services.PreferencesService
}

// NewPreferenceHandlers constructs handlers over the preferences service.
func NewPreferenceHandlers(prefs services.PreferencesService) *PreferenceHandlers {
	return &PreferenceHandlers{prefs: prefs}
}

// Routes wires the preference endpoints onto the provided router.
func (h *PreferenceHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/preferences", h.getPreferences)
	r.Put("/preferences/theme", h.setTheme)
	r.Post("/preferences/theme/toggle", h.toggleTheme)
	r.Post("/preferences/announcement/dismiss", h.dismissAnnouncement)
}

type preferencesPayload struct {
	Theme                 string `json:"theme"`
	AnnouncementDismissed bool   `json:"announcementDismissed"`
}

func (h *PreferenceHandlers) buildPayload() preferencesPayload {
	return preferencesPayload{
		Theme:                 h.prefs.Theme(),
		AnnouncementDismissed: h.prefs.AnnouncementDismissed(),
	}
}

func (h *PreferenceHandlers) getPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.buildPayload())
}

type setThemeRequest struct {
	Theme string `json:"theme"`
}

func (h *PreferenceHandlers) setTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := readLimitedBody(r, maxPreferencesBodySize)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), status))
		return
	}

	var req setThemeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	h.prefs.SetTheme(req.Theme)
	writeJSONResponse(w, http.StatusOK, h.buildPayload())
}

func (h *PreferenceHandlers) toggleTheme(w http.ResponseWriter, r *http.Request) {
	h.prefs.ToggleTheme()
	writeJSONResponse(w, http.StatusOK, h.buildPayload())
}

func (h *PreferenceHandlers) dismissAnnouncement(w http.ResponseWriter, r *http.Request) {
	h.prefs.DismissAnnouncement()
	writeJSONResponse(w, http.StatusOK, h.buildPayload())
}
