package gacha

import (
	"fmt"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
)

// CatalogView is the read-only slice of the catalog the engine draws from.
// Both methods return only non-exclusive spirits.
type CatalogView interface {
	Eligible(tier domain.RarityTier) []domain.Spirit
	AllEligible() []domain.Spirit
}

// SelectSpirit draws uniformly among eligible spirits of tier, falling back to
// every eligible spirit when the tier has none.
func SelectSpirit(view CatalogView, tier domain.RarityTier, rng RandomSource) (domain.Spirit, error) {
	pool := view.Eligible(tier)
	if len(pool) == 0 {
		pool = view.AllEligible()
	}
	if len(pool) == 0 {
		return domain.Spirit{}, fmt.Errorf("%w: tier %s", domain.ErrCatalogEmpty, tier)
	}
	return pickUniform(pool, rng), nil
}

// SelectSpiritAtLeast draws from the lowest tier at or above min that has
// eligible spirits. It never falls back below min, so the batch guarantee
// cannot be undone by a sparse catalog.
func SelectSpiritAtLeast(view CatalogView, min domain.RarityTier, rng RandomSource) (domain.Spirit, error) {
	for tier := min; tier <= domain.RarityLegendary; tier++ {
		if pool := view.Eligible(tier); len(pool) > 0 {
			return pickUniform(pool, rng), nil
		}
	}
	return domain.Spirit{}, fmt.Errorf("%w: no spirit at or above %s", domain.ErrCatalogEmpty, min)
}

func pickUniform(pool []domain.Spirit, rng RandomSource) domain.Spirit {
	idx := int(mustUnit(rng.Float64()) * float64(len(pool)))
	if idx >= len(pool) {
		idx = len(pool) - 1
	}
	return pool[idx]
}
