package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/osse101/SpiritSummon_Go/internal/logger"
)

// NATSBus publishes events as JSON on "<prefix>.<event type>" subjects.
// Subscribers receive the payload as a decoded map; use DecodePayload to type it.
type NATSBus struct {
	conn   *nats.Conn
	prefix string

	mu   sync.Mutex
	subs []*nats.Subscription
}

// ConnectNATS dials url and wraps the connection in a NATSBus
func ConnectNATS(url, prefix string) (*NATSBus, error) {
	conn, err := nats.Connect(url,
		nats.Name("spirit-summon"),
		nats.Timeout(NATSConnectTimeout),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	return NewNATSBus(conn, prefix), nil
}

// NewNATSBus wraps an existing connection
func NewNATSBus(conn *nats.Conn, prefix string) *NATSBus {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATSBus{conn: conn, prefix: prefix}
}

// Subject returns the NATS subject used for an event type
func (b *NATSBus) Subject(eventType Type) string {
	return subjectFor(b.prefix, eventType)
}

func subjectFor(prefix string, eventType Type) string {
	return prefix + "." + string(eventType)
}

// Publish encodes the event and publishes it. Delivery is at-most-once.
func (b *NATSBus) Publish(ctx context.Context, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", evt.Type, err)
	}
	if err := b.conn.Publish(b.Subject(evt.Type), data); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", evt.Type, err)
	}
	return nil
}

// Subscribe registers handler on the event type's subject
func (b *NATSBus) Subscribe(eventType Type, handler Handler) {
	subject := b.Subject(eventType)
	sub, err := b.conn.Subscribe(subject, func(msg *nats.Msg) {
		var evt Event
		if err := json.Unmarshal(msg.Data, &evt); err != nil {
			logger.Error(LogMsgNATSDecodeFailed, "subject", msg.Subject, "error", err)
			return
		}
		if err := handler(context.Background(), evt); err != nil {
			logger.Warn(LogMsgNATSHandlerFailed, "subject", msg.Subject, "error", err)
		}
	})
	if err != nil {
		logger.Error(LogMsgNATSSubscribeFailed, "subject", subject, "error", err)
		return
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()
}

// Close drains subscriptions and pending publishes, then closes the connection
func (b *NATSBus) Close() error {
	return b.conn.Drain()
}
