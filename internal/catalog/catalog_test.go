package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sielo-candles/storefront/internal/domain"
)

func TestLoadEmbeddedSeed(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	butter, ok := c.Get("butter")
	require.True(t, ok)
	assert.Equal(t, "Butter", butter.Name)
	assert.Equal(t, 24.00, butter.Price)
	assert.Equal(t, domain.FamilyWarm, butter.Family)
	assert.Equal(t, "SC-BTR-220", butter.SKU)
	assert.Equal(t, "butter_1", butter.CoverImage())

	berry, ok := c.Get("berry")
	require.True(t, ok)
	assert.Equal(t, domain.FamilyCold, berry.Family)
	assert.Len(t, berry.Images, 3)
	assert.Equal(t, "pack", berry.Pack)
}

func TestGetUnknownID(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	_, ok := c.Get("linen")
	assert.False(t, ok)
	_, ok = c.Get("")
	assert.False(t, ok)
	assert.False(t, c.Has("  "))
}

func TestListReturnsCopyInSeedOrder(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "butter", list[0].ID)
	assert.Equal(t, "berry", list[1].ID)

	list[0].Name = "mutated"
	fresh, _ := c.Get("butter")
	assert.Equal(t, "Butter", fresh.Name)
}

func TestByFamily(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	warm, ok := c.ByFamily(domain.FamilyWarm)
	require.True(t, ok)
	assert.Equal(t, "butter", warm.ID)

	cold, ok := c.ByFamily(domain.FamilyCold)
	require.True(t, ok)
	assert.Equal(t, "berry", cold.ID)
}

func TestBuildValidation(t *testing.T) {
	cases := []struct {
		name     string
		products []domain.Product
	}{
		{name: "empty", products: nil},
		{name: "missing id", products: []domain.Product{{Name: "X", Family: domain.FamilyWarm}}},
		{name: "duplicate id", products: []domain.Product{
			{ID: "a", Family: domain.FamilyWarm},
			{ID: "a", Family: domain.FamilyCold},
		}},
		{name: "negative price", products: []domain.Product{{ID: "a", Price: -1, Family: domain.FamilyWarm}}},
		{name: "unknown family", products: []domain.Product{{ID: "a", Family: "tepid"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.products)
			assert.Error(t, err)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := parse([]byte("products: [whoops"))
	assert.ErrorIs(t, err, ErrInvalidSeed)
}
