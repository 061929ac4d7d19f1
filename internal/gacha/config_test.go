package gacha

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"hard pity not after soft start", func(c *Config) { c.Pity.HardPity = c.Pity.SoftPityStart }},
		{"zero rare interval", func(c *Config) { c.Pity.GuaranteedRareInterval = 0 }},
		{"negative rate", func(c *Config) { c.Rates.Epic = -0.1 }},
		{"rates above one", func(c *Config) { c.Rates.Uncommon = 0.95 }},
		{"batch above max", func(c *Config) { c.BatchPullCount = c.MaxBatchSize + 1 }},
		{"negative duplicate value", func(c *Config) { c.DuplicateValues.Rare = -1 }},
		{"zero batch pull count", func(c *Config) { c.BatchPullCount = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidConfig)
		})
	}
}

func TestDuplicateValueTable_For(t *testing.T) {
	table := DuplicateValueTable{Common: 1, Uncommon: 2, Rare: 3, Epic: 4, Legendary: 5}
	for i, tier := range domain.RarityTiers {
		assert.Equal(t, int64(i+1), table.For(tier))
	}
}

func TestParseConfig_EmptyUsesDefaults(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfig_Overrides(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
rates:
  legendary: 0.006
pity:
  hard_pity: 80
batch_pull_count: 5
duplicate_values:
  legendary: 1000
status_cache:
  ttl: 30s
`))
	require.NoError(t, err)

	assert.Equal(t, 0.006, cfg.Rates.Legendary)
	assert.Equal(t, 0.04, cfg.Rates.Epic, "unset keys keep defaults")
	assert.Equal(t, uint32(80), cfg.Pity.HardPity)
	assert.Equal(t, uint32(70), cfg.Pity.SoftPityStart)
	assert.Equal(t, uint32(5), cfg.BatchPullCount)
	assert.Equal(t, int64(1000), cfg.DuplicateValues.Legendary)
	assert.Equal(t, 30*time.Second, cfg.StatusCache.TTL)
}

func TestParseConfig_Errors(t *testing.T) {
	_, err := ParseConfig([]byte("rates:\n  mythic: 0.5\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = ParseConfig([]byte("single_pull_count: 1\n"))
	assert.Error(t, err, "a single pull is always one draw")

	_, err = ParseConfig([]byte("pity:\n  hard_pity: 10\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gacha.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_batch_size: 20\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(20), cfg.MaxBatchSize)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Fingerprint(t *testing.T) {
	base := DefaultConfig()
	assert.Len(t, base.Fingerprint(), 12)
	assert.Equal(t, base.Fingerprint(), DefaultConfig().Fingerprint())

	changed := DefaultConfig()
	changed.Rates.Legendary = 0.006
	assert.NotEqual(t, base.Fingerprint(), changed.Fingerprint())

	payout := DefaultConfig()
	payout.DuplicateValues.Epic = 300
	assert.NotEqual(t, base.Fingerprint(), payout.Fingerprint())
}
