package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
	"github.com/osse101/SpiritSummon_Go/internal/gacha"
)

// Monte Carlo check of a banner tuning file: observed tier rates and the
// distribution of gaps between epic and legendary drops.
func main() {
	configPath := flag.String("config", "configs/gacha.yaml", "Path to gacha tuning file")
	players := flag.Int("players", 10000, "Number of simulated players")
	pulls := flag.Int("pulls", 200, "Pulls per player")
	seed := flag.Uint64("seed", 1, "Random seed")
	flag.Parse()

	cfg, err := gacha.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	report, err := gacha.Simulate(cfg, gacha.NewSeededRNG(*seed), gacha.SimParams{
		Players:        *players,
		PullsPerPlayer: *pulls,
	})
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	fmt.Printf("Simulated %d pulls (%d players x %d)\n\n", report.TotalPulls, *players, *pulls)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIER\tCOUNT\tRATE")
	for _, tier := range domain.RarityTiers {
		fmt.Fprintf(w, "%s\t%d\t%.4f\n", tier, report.TierCounts[tier], report.TierRates[tier])
	}
	w.Flush()

	fmt.Printf("\nRare interval guarantees: %d\nHard pity hits: %d\n\n", report.RareGuarantees, report.HardPityHits)

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GAP\tN\tMEAN\tSTDDEV\tP50\tP90\tP99\tMAX")
	printStats(w, "epic+", report.EpicGaps)
	printStats(w, "legendary", report.LegendaryGaps)
	w.Flush()
}

func printStats(w *tabwriter.Writer, name string, s gacha.Stats) {
	fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%.0f\t%.0f\t%.0f\t%d\n", name, s.Count, s.Mean, s.StdDev, s.P50, s.P90, s.P99, s.Max)
}
