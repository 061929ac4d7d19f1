package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
)

const sample = `
version: "1"
spirits:
  - id: moss-sprite
    name: Moss Sprite
    element: earth
    rarity: common
  - id: ember-fox
    name: Ember Fox
    element: fire
    rarity: rare
  - id: dawn-phoenix
    name: Dawn Phoenix
    element: fire
    rarity: legendary
  - id: founders-lantern
    name: Founder's Lantern
    rarity: legendary
    exclusive: true
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, "1", c.Version())
	assert.Len(t, c.AllEligible(), 3)
	assert.Len(t, c.Eligible(domain.RarityLegendary), 1)
	assert.Equal(t, domain.SpiritID("dawn-phoenix"), c.Eligible(domain.RarityLegendary)[0].ID)
	assert.Empty(t, c.Eligible(domain.RarityEpic))

	lantern, ok := c.Get("founders-lantern")
	require.True(t, ok)
	assert.True(t, lantern.Exclusive)

	counts := c.EligibleCounts()
	assert.Equal(t, 1, counts["common"])
	assert.Equal(t, 0, counts["epic"])
}

func TestNew_Rejects(t *testing.T) {
	_, err := New([]domain.Spirit{{ID: "a", Rarity: domain.RarityRare}, {ID: "a", Rarity: domain.RarityCommon}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = New([]domain.Spirit{{ID: " ", Rarity: domain.RarityRare}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = New([]domain.Spirit{{ID: "x", Rarity: domain.RarityTier(9)}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParse_BadRarity(t *testing.T) {
	_, err := Parse([]byte("spirits:\n  - id: a\n    rarity: mythic\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spirits.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())

	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_MissingRarity(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"absent key", "spirits:\n  - id: phoenix\n    name: Phoenix\n"},
		{"null value", "spirits:\n  - id: phoenix\n    rarity:\n"},
		{"second entry", "spirits:\n  - id: moss\n    rarity: common\n  - id: phoenix\n    name: Phoenix\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, c)
			assert.Contains(t, err.Error(), "phoenix")
		})
	}
}

func TestParse_ExplicitCommon(t *testing.T) {
	c, err := Parse([]byte("spirits:\n  - id: moss\n    rarity: common\n"))
	require.NoError(t, err)

	moss, ok := c.Get("moss")
	require.True(t, ok)
	assert.Equal(t, domain.RarityCommon, moss.Rarity)
}
