package gacha

import (
	"math"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
)

// ForceRare reports whether the periodic rare guarantee applies to the next
// draw. The check runs on the counter as it will be after this draw.
func ForceRare(state domain.PityState, tuning PityTuning) bool {
	return uint64(state.PullsSinceRare)+1 >= uint64(tuning.GuaranteedRareInterval)
}

// SampleTier picks a tier for roll r. First match wins, which is the tie-break
// contract: natural Legendary/Epic hits are never suppressed by the rare
// guarantee, it only promotes into Rare. guaranteed is true when an override
// (rare guarantee or hard pity) produced the tier rather than the natural roll.
func SampleTier(r float64, th Thresholds, forceRare bool) (tier domain.RarityTier, guaranteed bool) {
	r = mustUnit(r)

	switch {
	case r < th.Legendary:
		return domain.RarityLegendary, false
	case r < th.Epic:
		return domain.RarityEpic, th.HardPity && r >= th.naturalEpic
	case r < th.Rare:
		return domain.RarityRare, false
	case forceRare:
		return domain.RarityRare, true
	case r < th.Uncommon:
		return domain.RarityUncommon, false
	default:
		return domain.RarityCommon, false
	}
}

// AdvancePity applies one draw's result to the counters. Both streaks
// increment first, then a qualifying result zeroes the relevant ones.
func AdvancePity(state domain.PityState, tier domain.RarityTier) domain.PityState {
	next := domain.PityState{
		PullsSinceRare: saturatingInc(state.PullsSinceRare),
		PullsSinceEpic: saturatingInc(state.PullsSinceEpic),
		TotalPulls:     saturatingInc(state.TotalPulls),
	}

	switch {
	case tier.AtLeast(domain.RarityEpic):
		next.PullsSinceEpic = 0
		next.PullsSinceRare = 0
	case tier == domain.RarityRare:
		next.PullsSinceRare = 0
	}
	return next
}

func saturatingInc(v uint32) uint32 {
	if v == math.MaxUint32 {
		return v
	}
	return v + 1
}
