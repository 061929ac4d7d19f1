package gacha

import (
	"fmt"
	"math"
	"sort"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
)

// SimParams controls a tier-level Monte Carlo run. The catalog is not
// involved: only rates and pity behavior are measured.
type SimParams struct {
	Players        int
	PullsPerPlayer int
}

// Stats summarises a sample of gap lengths.
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	Max    int     `json:"max"`
}

// SimReport is the outcome of Simulate.
type SimReport struct {
	TotalPulls int                           `json:"total_pulls"`
	TierCounts map[domain.RarityTier]int     `json:"tier_counts"`
	TierRates  map[domain.RarityTier]float64 `json:"tier_rates"`

	RareGuarantees int `json:"rare_guarantees"`
	HardPityHits   int `json:"hard_pity_hits"`

	// EpicGaps counts draws between consecutive Epic-or-better results,
	// including the hit itself.
	EpicGaps      Stats `json:"epic_gaps"`
	LegendaryGaps Stats `json:"legendary_gaps"`
}

// Simulate runs independent single-draw sequences for p.Players players
// starting from empty pity state.
func Simulate(cfg Config, rng RandomSource, p SimParams) (SimReport, error) {
	if err := cfg.Validate(); err != nil {
		return SimReport{}, err
	}
	if p.Players <= 0 || p.PullsPerPlayer <= 0 {
		return SimReport{}, fmt.Errorf("%w: players and pulls per player must be positive", domain.ErrInvalidInput)
	}

	report := SimReport{
		TierCounts: make(map[domain.RarityTier]int, len(domain.RarityTiers)),
		TierRates:  make(map[domain.RarityTier]float64, len(domain.RarityTiers)),
	}
	var epicGaps, legendaryGaps []int

	for player := 0; player < p.Players; player++ {
		var state domain.PityState
		sinceLegendary := 0

		for i := 0; i < p.PullsPerPlayer; i++ {
			th := ResolveThresholds(state, cfg.Rates, cfg.Pity)
			forceRare := ForceRare(state, cfg.Pity)
			tier, guaranteed := SampleTier(rng.Float64(), th, forceRare)

			if guaranteed {
				if th.HardPity && tier.AtLeast(domain.RarityEpic) {
					report.HardPityHits++
				} else {
					report.RareGuarantees++
				}
			}

			sinceLegendary++
			if tier.AtLeast(domain.RarityEpic) {
				epicGaps = append(epicGaps, int(state.PullsSinceEpic)+1)
			}
			if tier == domain.RarityLegendary {
				legendaryGaps = append(legendaryGaps, sinceLegendary)
				sinceLegendary = 0
			}

			state = AdvancePity(state, tier)
			report.TierCounts[tier]++
			report.TotalPulls++
		}
	}

	for _, tier := range domain.RarityTiers {
		report.TierRates[tier] = float64(report.TierCounts[tier]) / float64(report.TotalPulls)
	}
	report.EpicGaps = calcStats(epicGaps)
	report.LegendaryGaps = calcStats(legendaryGaps)
	return report, nil
}

func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}

	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// population variance
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 {
			return float64(cp[0])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Count:  n,
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    percentile(0.50),
		P90:    percentile(0.90),
		P99:    percentile(0.99),
		Max:    cp[n-1],
	}
}
