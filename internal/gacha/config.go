package gacha

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
)

// RateTable holds the base probability of each tier. Whatever mass is left
// after the four listed tiers belongs to Common.
type RateTable struct {
	Legendary float64 `yaml:"legendary" json:"legendary" validate:"gte=0,lte=1"`
	Epic      float64 `yaml:"epic" json:"epic" validate:"gte=0,lte=1"`
	Rare      float64 `yaml:"rare" json:"rare" validate:"gte=0,lte=1"`
	Uncommon  float64 `yaml:"uncommon" json:"uncommon" validate:"gte=0,lte=1"`
}

// Sum is the combined base rate of every non-Common tier.
func (r RateTable) Sum() float64 {
	return r.Legendary + r.Epic + r.Rare + r.Uncommon
}

// PityTuning controls the soft ramp, hard pity and the periodic rare guarantee.
type PityTuning struct {
	SoftPityStart          uint32  `yaml:"soft_pity_start" json:"soft_pity_start"`
	HardPity               uint32  `yaml:"hard_pity" json:"hard_pity" validate:"gtfield=SoftPityStart"`
	SoftPityStep           float64 `yaml:"soft_pity_step" json:"soft_pity_step" validate:"gte=0,lte=1"`
	GuaranteedRareInterval uint32  `yaml:"guaranteed_rare_interval" json:"guaranteed_rare_interval" validate:"gt=0"`
}

// DuplicateValueTable maps each tier to the currency paid for a duplicate.
type DuplicateValueTable struct {
	Common    int64 `yaml:"common" json:"common" validate:"gte=0"`
	Uncommon  int64 `yaml:"uncommon" json:"uncommon" validate:"gte=0"`
	Rare      int64 `yaml:"rare" json:"rare" validate:"gte=0"`
	Epic      int64 `yaml:"epic" json:"epic" validate:"gte=0"`
	Legendary int64 `yaml:"legendary" json:"legendary" validate:"gte=0"`
}

// For returns the payout for a duplicate of the given tier.
func (t DuplicateValueTable) For(tier domain.RarityTier) int64 {
	switch tier {
	case domain.RarityLegendary:
		return t.Legendary
	case domain.RarityEpic:
		return t.Epic
	case domain.RarityRare:
		return t.Rare
	case domain.RarityUncommon:
		return t.Uncommon
	default:
		return t.Common
	}
}

// StatusCacheConfig sizes the pity status read cache.
type StatusCacheConfig struct {
	Size int           `yaml:"size" json:"size" validate:"gte=0"`
	TTL  time.Duration `yaml:"ttl" json:"ttl"`
}

// Config is the full tuning surface of the engine. BatchPullCount is the
// batch size used when a caller does not name one; a single pull is always
// one draw.
type Config struct {
	Rates           RateTable           `yaml:"rates" json:"rates"`
	Pity            PityTuning          `yaml:"pity" json:"pity"`
	BatchPullCount  uint32              `yaml:"batch_pull_count" json:"batch_pull_count" validate:"gt=0,ltefield=MaxBatchSize"`
	MaxBatchSize    uint32              `yaml:"max_batch_size" json:"max_batch_size" validate:"gt=0"`
	DuplicateValues DuplicateValueTable `yaml:"duplicate_values" json:"duplicate_values"`
	StatusCache     StatusCacheConfig   `yaml:"status_cache" json:"status_cache"`
}

// DefaultConfig returns the standard banner tuning.
func DefaultConfig() Config {
	return Config{
		Rates: RateTable{
			Legendary: 0.01,
			Epic:      0.04,
			Rare:      0.10,
			Uncommon:  0.25,
		},
		Pity: PityTuning{
			SoftPityStart:          70,
			HardPity:               90,
			SoftPityStep:           0.02,
			GuaranteedRareInterval: 10,
		},
		BatchPullCount:  10,
		MaxBatchSize:    100,
		DuplicateValues: DuplicateValueTable{
			Common:    25,
			Uncommon:  50,
			Rare:      100,
			Epic:      250,
			Legendary: 500,
		},
		StatusCache: StatusCacheConfig{
			Size: DefaultStatusCacheSize,
			TTL:  DefaultStatusCacheTTL,
		},
	}
}

var configValidator = validator.New()

// Validate checks field bounds and the cross-field rules the tags cannot express.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fe := range validationErrs {
				fields = append(fields, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, strings.Join(fields, "; "))
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if sum := c.Rates.Sum(); sum > 1 {
		return fmt.Errorf("%w: base rates sum to %.4f, must be <= 1", domain.ErrInvalidConfig, sum)
	}
	return nil
}

// Fingerprint is a short hash of the tuning. Instances reporting the same
// fingerprint roll the same odds and pay the same duplicate values.
func (c Config) Fingerprint() string {
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:6])
}
