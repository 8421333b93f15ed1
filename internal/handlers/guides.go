package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sielo-candles/storefront/internal/content"
	"github.com/sielo-candles/storefront/internal/format"
	"github.com/sielo-candles/storefront/internal/platform/httpx"
)

// GuideHandlers serves the rendered editorial guides.
type GuideHandlers struct {
	library *content.Library
}

// NewGuideHandlers constructs handlers over the guide library.
func NewGuideHandlers(library *content.Library) *GuideHandlers {
	return &GuideHandlers{library: library}
}

// Routes wires the guide endpoints onto the provided router.
func (h *GuideHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/guides", h.listGuides)
	r.Get("/guides/{slug}", h.getGuide)
}

type guideSummaryPayload struct {
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Summary string   `json:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Updated string   `json:"updated,omitempty"`
}

type guidePayload struct {
	guideSummaryPayload
	HTML string `json:"html"`
}

func buildGuideSummary(g content.Guide) guideSummaryPayload {
	payload := guideSummaryPayload{
		Slug:    g.Slug,
		Title:   g.Title,
		Summary: g.Summary,
		Tags:    g.Tags,
	}
	if !g.Updated.IsZero() {
		payload.Updated = format.Date(g.Updated, "it")
	}
	return payload
}

func (h *GuideHandlers) listGuides(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.library == nil {
		httpx.WriteError(ctx, w, httpx.NewError("guides_unavailable", "guide library unavailable", http.StatusServiceUnavailable))
		return
	}
	guides := h.library.List()
	items := make([]guideSummaryPayload, 0, len(guides))
	for _, g := range guides {
		items = append(items, buildGuideSummary(g))
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"items": items})
}

func (h *GuideHandlers) getGuide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.library == nil {
		httpx.WriteError(ctx, w, httpx.NewError("guides_unavailable", "guide library unavailable", http.StatusServiceUnavailable))
		return
	}

	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	guide, err := h.library.Guide(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			httpx.WriteError(ctx, w, httpx.NewError("guide_not_found", "guide not found", http.StatusNotFound))
			return
		}
		httpx.WriteError(ctx, w, httpx.NewError("guide_error", "failed to load guide", http.StatusInternalServerError))
		return
	}

	writeJSONResponse(w, http.StatusOK, guidePayload{
		guideSummaryPayload: buildGuideSummary(guide),
		HTML:                guide.HTML,
	})
}
