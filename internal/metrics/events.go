package metrics

import (
	"context"

	"github.com/osse101/SpiritSummon_Go/internal/event"
	"github.com/osse101/SpiritSummon_Go/internal/logger"
)

// EventMetricsCollector subscribes to gacha events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to the gacha event types
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range []event.Type{
		event.GachaPullCompleted,
		event.GachaDuplicateConverted,
	} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.GachaPullCompleted:
		payload, err := event.DecodePayload[event.PullCompletedPayloadV1](evt)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		for _, result := range payload.Results {
			PullsTotal.WithLabelValues(result.Rarity.String()).Inc()
		}

	case event.GachaDuplicateConverted:
		payload, err := event.DecodePayload[event.DuplicateConvertedPayloadV1](evt)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		DuplicatesConverted.WithLabelValues(payload.Rarity.String()).Inc()
		DuplicateCurrencyAwarded.Add(float64(payload.Amount))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
