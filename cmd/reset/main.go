package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/osse101/SpiritSummon_Go/internal/bootstrap"
	"github.com/osse101/SpiritSummon_Go/internal/config"
	"github.com/osse101/SpiritSummon_Go/internal/gacha"
	"github.com/osse101/SpiritSummon_Go/internal/logger"
)

// Support tool: zeroes a player's pity counters. Owned spirits are kept.
// A draw the running app still holds as unconfirmed is granted its spirits
// on the player's next pull, but its counters never replace the reset.
func main() {
	playerID := flag.String("player", "", "Player id whose pity should be reset")
	confirm := flag.Bool("yes", false, "Skip the confirmation prompt")
	flag.Parse()

	if *playerID == "" {
		fmt.Fprintln(os.Stderr, "usage: reset -player <id> [-yes]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, logger.DefaultServiceName+"-reset", logger.DefaultVersion, cfg.Environment, false))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	engine, err := bootstrap.LoadEngine(cfg)
	if err != nil {
		log.Fatalf("Failed to load gacha engine: %v", err)
	}

	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer storage.Close()

	support, err := gacha.NewSupportService(storage.Gacha, engine.Catalog, engine.Config, nil)
	if err != nil {
		log.Fatalf("Failed to create support service: %v", err)
	}

	before, err := support.GetPityStatus(ctx, *playerID)
	if err != nil {
		log.Fatalf("Failed to read pity status: %v", err)
	}
	fmt.Printf("Player %s: %d since rare, %d since epic, %d total pulls\n",
		before.PlayerID, before.State.PullsSinceRare, before.State.PullsSinceEpic, before.State.TotalPulls)

	if !*confirm {
		fmt.Print("Reset pity counters? [y/N] ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return
		}
	}

	if err := support.ResetPity(ctx, *playerID); err != nil {
		log.Fatalf("Failed to reset pity: %v", err)
	}

	fmt.Println("✅ Pity reset complete. Owned spirits were not changed.")
}
