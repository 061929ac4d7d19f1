package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"`
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Gacha event types
const (
	GachaPullCompleted      Type = "gacha.pull.completed"
	GachaDuplicateConverted Type = "gacha.duplicate.converted"
)

// Metadata keys
const (
	MetadataRequestID = "request_id"
)

// PullCompletedPayloadV1 is published once per single or batch pull, after the save attempt
type PullCompletedPayloadV1 struct {
	PlayerID    string              `json:"player_id"`
	Results     []domain.PullResult `json:"results"`
	Batch       bool                `json:"batch"`
	PityAfter   domain.PityState    `json:"pity_after"`
	Unconfirmed bool                `json:"unconfirmed"`
	Timestamp   int64               `json:"timestamp"`
}

// DuplicateConvertedPayloadV1 asks the wallet owner to credit a duplicate payout
type DuplicateConvertedPayloadV1 struct {
	PlayerID  string            `json:"player_id"`
	SpiritID  domain.SpiritID   `json:"spirit_id"`
	Rarity    domain.RarityTier `json:"rarity"`
	Amount    int64             `json:"amount"`
	Timestamp int64             `json:"timestamp"`
}

func requestMetadata(requestID string) Metadata {
	if requestID == "" {
		return nil
	}
	return map[string]interface{}{MetadataRequestID: requestID}
}

// NewPullCompletedEvent creates a pull completed event
func NewPullCompletedEvent(requestID, playerID string, results []domain.PullResult, batch bool, pityAfter domain.PityState, unconfirmed bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GachaPullCompleted,
		Payload: PullCompletedPayloadV1{
			PlayerID:    playerID,
			Results:     results,
			Batch:       batch,
			PityAfter:   pityAfter,
			Unconfirmed: unconfirmed,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: requestMetadata(requestID),
	}
}

// NewDuplicateConvertedEvent creates a duplicate conversion event
func NewDuplicateConvertedEvent(requestID, playerID string, spiritID domain.SpiritID, rarity domain.RarityTier, amount int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GachaDuplicateConverted,
		Payload: DuplicateConvertedPayloadV1{
			PlayerID:  playerID,
			SpiritID:  spiritID,
			Rarity:    rarity,
			Amount:    amount,
			Timestamp: time.Now().Unix(),
		},
		Metadata: requestMetadata(requestID),
	}
}

// DecodePayload returns the event payload as T. MemoryBus delivers the struct
// as published; NATSBus delivers a generic map that is re-decoded through JSON.
func DecodePayload[T any](evt Event) (T, error) {
	if v, ok := evt.Payload.(T); ok {
		return v, nil
	}
	var out T
	data, err := json.Marshal(evt.Payload)
	if err != nil {
		return out, fmt.Errorf("failed to re-encode %s payload: %w", evt.Type, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode %s payload: %w", evt.Type, err)
	}
	return out, nil
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
