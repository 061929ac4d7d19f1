package event

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
	"github.com/osse101/SpiritSummon_Go/internal/testing/leaktest"
)

var errBusDown = errors.New("bus down")

// flakyBus fails the first failFirst publishes, or every publish when failFirst < 0.
type flakyBus struct {
	mu        sync.Mutex
	failFirst int
	attempts  []time.Time
	delivered []Event
}

func (b *flakyBus) Publish(_ context.Context, evt Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attempts = append(b.attempts, time.Now())
	if b.failFirst < 0 || len(b.attempts) <= b.failFirst {
		return errBusDown
	}
	b.delivered = append(b.delivered, evt)
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) attemptCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.attempts)
}

func (b *flakyBus) deliveredCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.delivered)
}

func (b *flakyBus) gaps() []time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]time.Duration, 0, len(b.attempts))
	for i := 1; i < len(b.attempts); i++ {
		out = append(out, b.attempts[i].Sub(b.attempts[i-1]))
	}
	return out
}

func pullEvent(playerID string) Event {
	return NewPullCompletedEvent("req-1", playerID, []domain.PullResult{
		{SpiritID: "ember-fox", Rarity: domain.RarityRare, IsNewAcquisition: true},
	}, false, domain.PityState{PullsSinceEpic: 1, TotalPulls: 1}, false)
}

func deadLetterPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "deadletter.jsonl")
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry DeadLetterEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

// deadLetterCount is safe to call from require.Eventually's polling goroutine.
func deadLetterCount(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	return bytes.Count(data, []byte("\n"))
}

func TestResilientPublisher_DeliversInline(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{}

	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), pullEvent("alice"))

	assert.Equal(t, 1, bus.deliveredCount())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RetriesAfterFailure(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{failFirst: 1}

	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), pullEvent("alice"))

	require.Eventually(t, func() bool { return bus.deliveredCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, bus.attemptCount())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_BackoffDoubles(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{failFirst: 2}
	base := 40 * time.Millisecond

	rp, err := NewResilientPublisher(bus, 5, base, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), pullEvent("alice"))

	require.Eventually(t, func() bool { return bus.deliveredCount() == 1 }, 2*time.Second, 5*time.Millisecond)
	gaps := bus.gaps()
	require.Len(t, gaps, 2)
	assert.GreaterOrEqual(t, gaps[0], base)
	assert.GreaterOrEqual(t, gaps[1], 2*base)
}

func TestResilientPublisher_ExhaustedRetriesAreDeadLettered(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{failFirst: -1}

	rp, err := NewResilientPublisher(bus, 2, 10*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), pullEvent("bob"))

	require.Eventually(t, func() bool { return deadLetterCount(path) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 3, bus.attemptCount(), "one inline attempt plus two retries")

	entry := readDeadLetters(t, path)[0]
	assert.Equal(t, DeadLetterSchemaVersion, entry.SchemaVersion)
	assert.Equal(t, 3, entry.Attempts)
	assert.Equal(t, errBusDown.Error(), entry.LastError)
	assert.Equal(t, GachaPullCompleted, entry.Event.Type)

	payload, err := DecodePayload[PullCompletedPayloadV1](entry.Event)
	require.NoError(t, err)
	assert.Equal(t, "bob", payload.PlayerID)
	require.Len(t, payload.Results, 1)
	assert.Equal(t, domain.SpiritID("ember-fox"), payload.Results[0].SpiritID)
}

func TestResilientPublisher_QueueOverflow(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{failFirst: -1}

	// No worker and a tiny queue: everything past capacity goes straight to dead-letter
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, 2),
		maxRetries: 3,
		retryDelay: time.Hour,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	defer rp.Shutdown(context.Background())

	for _, player := range []string{"a", "b", "c", "d", "e"} {
		rp.PublishWithRetry(context.Background(), pullEvent(player))
	}

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 3)
	for _, entry := range entries {
		assert.Equal(t, 1, entry.Attempts)
	}
}

func TestResilientPublisher_ShutdownFlushesPending(t *testing.T) {
	leaktest.Run(t, 0, func() {
		path := deadLetterPath(t)
		bus := &flakyBus{failFirst: 1}

		rp, err := NewResilientPublisher(bus, 3, time.Hour, path)
		require.NoError(t, err)

		rp.PublishWithRetry(context.Background(), pullEvent("alice"))
		assert.Equal(t, 0, bus.deliveredCount())

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		require.NoError(t, rp.Shutdown(ctx))

		assert.Equal(t, 1, bus.deliveredCount(), "final attempt skips the backoff wait")
		assert.Empty(t, readDeadLetters(t, path))
	})
}

func TestResilientPublisher_SatisfiesBus(t *testing.T) {
	path := deadLetterPath(t)
	bus := &flakyBus{failFirst: -1}

	rp, err := NewResilientPublisher(bus, 1, time.Hour, path)
	require.NoError(t, err)

	var b Bus = rp
	assert.NoError(t, b.Publish(context.Background(), pullEvent("carol")),
		"delivery failures never surface to the caller")

	require.NoError(t, rp.Shutdown(context.Background()))
	assert.Equal(t, 2, bus.attemptCount())

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Attempts)
}

func TestResilientPublisher_SubscribeDelegates(t *testing.T) {
	mem := NewMemoryBus()
	rp, err := NewResilientPublisher(mem, 1, time.Hour, deadLetterPath(t))
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	var got []string
	rp.Subscribe(GachaPullCompleted, func(_ context.Context, evt Event) error {
		payload, err := DecodePayload[PullCompletedPayloadV1](evt)
		if err != nil {
			return err
		}
		got = append(got, payload.PlayerID)
		return nil
	})

	require.NoError(t, rp.Publish(context.Background(), pullEvent("dave")))
	assert.Equal(t, []string{"dave"}, got)
}

func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	bus := &flakyBus{}
	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, deadLetterPath(t))
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	const publishers, perPublisher = 10, 5
	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perPublisher; j++ {
				rp.PublishWithRetry(context.Background(), pullEvent("alice"))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, publishers*perPublisher, bus.deliveredCount())
}
