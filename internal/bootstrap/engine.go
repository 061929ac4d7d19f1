package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/SpiritSummon_Go/internal/catalog"
	"github.com/osse101/SpiritSummon_Go/internal/config"
	"github.com/osse101/SpiritSummon_Go/internal/gacha"
	"github.com/osse101/SpiritSummon_Go/internal/handler"
)

// Engine is the loaded tuning and catalog the gacha service runs on.
type Engine struct {
	Config  gacha.Config
	Catalog *catalog.Catalog
	RNG     gacha.RandomSource
}

// LoadEngine reads the banner tuning and spirit catalog from disk.
func LoadEngine(cfg *config.Config) (*Engine, error) {
	slog.Info(LogMsgLoadingEngineConfig)

	gachaCfg, err := gacha.LoadConfig(cfg.GachaConfigPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadGachaConfig, err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	rng := gacha.DefaultRNG()
	if cfg.RNGSeed != 0 {
		slog.Warn(LogMsgSeededRNG, "seed", cfg.RNGSeed)
		rng = gacha.NewSeededRNG(cfg.RNGSeed)
	}

	slog.Info(LogMsgEngineConfigLoaded,
		"spirits", cat.Len(),
		"eligible", cat.EligibleCounts(),
		"hard_pity", gachaCfg.Pity.HardPity,
		"soft_pity_start", gachaCfg.Pity.SoftPityStart,
		"rare_interval", gachaCfg.Pity.GuaranteedRareInterval,
		"batch_size", gachaCfg.BatchPullCount,
		"tuning_hash", gachaCfg.Fingerprint())

	return &Engine{Config: gachaCfg, Catalog: cat, RNG: rng}, nil
}

// Banner describes the loaded catalog and tuning for the /version endpoint.
func (e *Engine) Banner() handler.BannerInfo {
	return handler.BannerInfo{
		CatalogVersion: e.Catalog.Version(),
		Spirits:        e.Catalog.Len(),
		EligibleByTier: e.Catalog.EligibleCounts(),
		TuningHash:     e.Config.Fingerprint(),
		BatchSize:      e.Config.BatchPullCount,
	}
}
