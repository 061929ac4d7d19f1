package bootstrap

import (
	"log/slog"

	"github.com/osse101/SpiritSummon_Go/internal/event"
	"github.com/osse101/SpiritSummon_Go/internal/metrics"
)

// RegisterEventHandlers sets up the in-process event subscribers.
func RegisterEventHandlers(bus event.Bus) {
	metricsCollector := metrics.NewEventMetricsCollector()
	metricsCollector.Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)
}
