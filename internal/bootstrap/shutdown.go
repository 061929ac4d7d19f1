package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/SpiritSummon_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server  *server.Server
	Events  *EventSystem
	Storage *Storage
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Event publisher (flush pending events)
// 3. Event transport and storage connections
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Events != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.Events.Publisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}

		slog.Info(LogMsgClosingEventTransport)
		if err := components.Events.Close(); err != nil {
			slog.Error(LogMsgEventTransportCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgClosingStorage)
	if err := components.Storage.Close(); err != nil {
		slog.Error(LogMsgStorageCloseFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
