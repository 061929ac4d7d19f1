package gacha

import "github.com/osse101/SpiritSummon_Go/internal/domain"

// Thresholds are cumulative cut points over [0, 1) in priority order
// Legendary > Epic > Rare > Uncommon. A roll at or above Uncommon is Common.
type Thresholds struct {
	Legendary float64
	Epic      float64
	Rare      float64
	Uncommon  float64

	// HardPity is set when the epic rate was forced for this draw.
	HardPity bool
	// naturalEpic is where Epic would have ended without hard pity.
	naturalEpic float64
}

// ResolveThresholds maps the pre-draw pity state onto the effective
// distribution for the next draw. Rates are not renormalized:
// once stacked rates exceed 1, Common (and lower tiers) become unreachable.
func ResolveThresholds(state domain.PityState, rates RateTable, tuning PityTuning) Thresholds {
	legendaryRate := rates.Legendary
	epicRate := rates.Epic

	if state.PullsSinceEpic >= tuning.SoftPityStart {
		over := float64(state.PullsSinceEpic - tuning.SoftPityStart)
		legendaryRate += over * tuning.SoftPityStep * LegendarySoftPityShare
		epicRate += over * tuning.SoftPityStep
	}

	th := Thresholds{Legendary: legendaryRate}
	th.naturalEpic = th.Legendary + epicRate

	if state.PullsSinceEpic >= tuning.HardPity {
		epicRate = HardPityEpicRate
		th.HardPity = true
	}

	th.Epic = th.Legendary + epicRate
	th.Rare = th.Epic + rates.Rare
	th.Uncommon = th.Rare + rates.Uncommon
	return th
}
