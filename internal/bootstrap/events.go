package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/SpiritSummon_Go/internal/config"
	"github.com/osse101/SpiritSummon_Go/internal/event"
)

// EventSystem is the publish side of the event pipeline plus the transport
// it wraps. Transport is closed after the publisher drains.
type EventSystem struct {
	Publisher *event.ResilientPublisher
	Transport event.Bus
	closer    func() error
}

// Close releases the transport connection, if any.
func (e *EventSystem) Close() error {
	if e == nil || e.closer == nil {
		return nil
	}
	return e.closer()
}

// InitializeEventSystem creates the event transport and wraps it in a
// resilient publisher. NATS is used when a URL is configured, otherwise the
// in-process bus.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	sys := &EventSystem{}
	transport := EventTransportMemory

	if cfg.EventsOverNATS() {
		natsBus, err := event.ConnectNATS(cfg.NATSURL, cfg.NATSSubjectPrefix)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectNATS, err)
		}
		sys.Transport = natsBus
		sys.closer = natsBus.Close
		transport = EventTransportNATS
	} else {
		sys.Transport = event.NewMemoryBus()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DeadLetterPath), DirPermission); err != nil {
		_ = sys.Close()
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(sys.Transport, cfg.EventMaxRetries, cfg.EventRetryDelay, cfg.DeadLetterPath)
	if err != nil {
		_ = sys.Close()
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}
	sys.Publisher = publisher

	slog.Info(LogMsgEventSystemInitialized,
		"transport", transport,
		"max_retries", cfg.EventMaxRetries,
		"retry_delay", cfg.EventRetryDelay,
		"deadletter_path", cfg.DeadLetterPath)

	return sys, nil
}
