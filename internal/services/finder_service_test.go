package services

import (
	"testing"

	"github.com/sielo-candles/storefront/internal/domain"
)

func TestRecommendCascadeOrder(t *testing.T) {
	finder, err := NewFinder(newTestCatalog(t))
	if err != nil {
		t.Fatalf("NewFinder error: %v", err)
	}

	cases := []struct {
		name   string
		sel    domain.FinderSelection
		wantID string
	}{
		{
			name:   "defaults pick the warm product",
			sel:    domain.DefaultFinderSelection(),
			wantID: "butter",
		},
		{
			name:   "cold preference wins regardless of other facets",
			sel:    domain.FinderSelection{Mood: domain.MoodCalm, Space: domain.SpaceHome, Preference: domain.PreferenceCold},
			wantID: "berry",
		},
		{
			// The space check fires before any warm-confirming rule.
			name:   "warm preference with night space still picks cold",
			sel:    domain.FinderSelection{Mood: domain.MoodCalm, Space: domain.SpaceNight, Preference: domain.PreferenceWarm},
			wantID: "berry",
		},
		{
			name:   "bold mood alone picks cold",
			sel:    domain.FinderSelection{Mood: domain.MoodBold, Space: domain.SpaceHome, Preference: domain.PreferenceWarm},
			wantID: "berry",
		},
		{
			name:   "unrecognised facet values fall through to warm",
			sel:    domain.FinderSelection{Mood: "sleepy", Space: "office", Preference: "neutral"},
			wantID: "butter",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := finder.Recommend(tc.sel)
			if !ok {
				t.Fatal("expected a recommendation")
			}
			if got.ID != tc.wantID {
				t.Fatalf("want %s, got %s", tc.wantID, got.ID)
			}
		})
	}
}
