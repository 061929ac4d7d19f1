package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
)

// RandomSource supplies uniform values in [0, 1). The engine never reaches for
// a global generator, so a seeded or scripted source reproduces every draw.
type RandomSource interface {
	Float64() float64
}

// cryptoRNG is the production default. Safe for concurrent use.
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	// 53 random bits scaled into [0, 1)
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// DefaultRNG returns the crypto-backed source.
func DefaultRNG() RandomSource { return cryptoRNG{} }

// seededRNG is a PCG stream guarded for concurrent callers.
type seededRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededRNG returns a reproducible source (simulations, replays, tests).
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// ScriptedRNG replays a fixed list of values, wrapping around at the end.
type ScriptedRNG struct {
	mu     sync.Mutex
	values []float64
	pos    int
}

// NewScriptedRNG builds a source that returns values in order.
func NewScriptedRNG(values ...float64) *ScriptedRNG {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &ScriptedRNG{values: values}
}

func (s *ScriptedRNG) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Position is the number of values consumed so far.
func (s *ScriptedRNG) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// mustUnit panics when r is not in [0, 1). A broken source is a programming
// error, never a player-facing condition.
func mustUnit(r float64) float64 {
	if math.IsNaN(r) || r < 0 || r >= 1 {
		panic(fmt.Sprintf("gacha: random source returned %v, want value in [0,1)", r))
	}
	return r
}
