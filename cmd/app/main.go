package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/SpiritSummon_Go/internal/bootstrap"
	"github.com/osse101/SpiritSummon_Go/internal/concurrency"
	"github.com/osse101/SpiritSummon_Go/internal/config"
	"github.com/osse101/SpiritSummon_Go/internal/gacha"
	"github.com/osse101/SpiritSummon_Go/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	if warnings, err := config.ValidateEnvWithWarnings(); err != nil {
		slog.Warn("Environment validation failed", "error", err)
	} else {
		for _, w := range warnings {
			slog.Warn(w)
		}
	}

	ctx := context.Background()

	engine, err := bootstrap.LoadEngine(cfg)
	if err != nil {
		slog.Error("Failed to load gacha engine", "error", err)
		os.Exit(1)
	}

	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		_ = storage.Close()
		os.Exit(1)
	}
	bootstrap.RegisterEventHandlers(events.Publisher)

	gachaService, err := gacha.NewService(storage.Gacha, engine.Catalog, engine.Config, engine.RNG, concurrency.NewLockManager(), events.Publisher)
	if err != nil {
		slog.Error(bootstrap.ErrMsgFailedCreateService, "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, storage.Health, gachaService, engine.Banner())

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:  srv,
		Events:  events,
		Storage: storage,
	})
}
