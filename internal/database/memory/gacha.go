// Package memory is a process-local gacha store for development, simulations
// and tests. State is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
	"github.com/osse101/SpiritSummon_Go/internal/repository"
)

type playerRecord struct {
	pity  domain.PityState
	owned domain.OwnershipSet
}

// GachaRepository implements repository.Gacha over a guarded map
type GachaRepository struct {
	mu      sync.RWMutex
	players map[string]*playerRecord
}

var _ repository.Gacha = (*GachaRepository)(nil)

// NewGachaRepository creates an empty store
func NewGachaRepository() *GachaRepository {
	return &GachaRepository{players: make(map[string]*playerRecord)}
}

func (r *GachaRepository) GetPityState(ctx context.Context, playerID string) (domain.PityState, error) {
	if err := ctx.Err(); err != nil {
		return domain.PityState{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rec, ok := r.players[playerID]; ok {
		return rec.pity, nil
	}
	return domain.PityState{}, nil
}

// GetOwnedSpirits returns ids in sorted order
func (r *GachaRepository) GetOwnedSpirits(ctx context.Context, playerID string) ([]domain.SpiritID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.players[playerID]
	if !ok {
		return nil, nil
	}
	ids := make([]domain.SpiritID, 0, len(rec.owned))
	for id := range rec.owned {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *GachaRepository) SavePullState(ctx context.Context, playerID string, state domain.PityState, acquired []domain.SpiritID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := r.record(playerID)
	rec.pity = state
	for _, id := range acquired {
		rec.owned.Add(id)
	}
	return nil
}

func (r *GachaRepository) ResetPityState(ctx context.Context, playerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.record(playerID).pity = domain.PityState{}
	return nil
}

// record must be called with mu held for writing
func (r *GachaRepository) record(playerID string) *playerRecord {
	rec, ok := r.players[playerID]
	if !ok {
		rec = &playerRecord{owned: domain.NewOwnershipSet(nil)}
		r.players[playerID] = rec
	}
	return rec
}
