package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/SpiritSummon_Go/internal/config"
	"github.com/osse101/SpiritSummon_Go/internal/database"
	"github.com/osse101/SpiritSummon_Go/internal/database/memory"
	"github.com/osse101/SpiritSummon_Go/internal/database/postgres"
	"github.com/osse101/SpiritSummon_Go/internal/database/sqlite"
	"github.com/osse101/SpiritSummon_Go/internal/handler"
	"github.com/osse101/SpiritSummon_Go/internal/repository"
)

// Storage holds the pity store selected by configuration.
type Storage struct {
	Gacha repository.Gacha
	// Health is nil for the in-memory backend.
	Health handler.Pinger
	closer func() error
}

// Close releases the backend's connections.
func (s *Storage) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer()
}

// InitializeStorage opens the configured backend and applies its migrations.
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectPostgres, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigratePostgres, err)
		}
		slog.Info(LogMsgStorageInitialized, "driver", cfg.StorageDriver, "host", cfg.DBHost, "db", cfg.DBName)
		return &Storage{
			Gacha:  postgres.NewGachaRepository(pool),
			Health: pool,
			closer: func() error { pool.Close(); return nil },
		}, nil

	case config.StorageDriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateSQLiteDir, err)
		}
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenSQLite, err)
		}
		slog.Info(LogMsgStorageInitialized, "driver", cfg.StorageDriver, "path", cfg.SQLitePath)
		return &Storage{Gacha: store, Health: store, closer: store.Close}, nil

	case config.StorageDriverMemory:
		slog.Warn(LogMsgMemoryStorageWarning)
		return &Storage{Gacha: memory.NewGachaRepository()}, nil
	}

	return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorageDriver, cfg.StorageDriver)
}
