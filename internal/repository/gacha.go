package repository

import (
	"context"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
)

// Gacha defines the persistence the pull engine needs. Implementations must make
// SavePullState atomic (counters and new spirits land together) and idempotent
// for spirits already stored, since an unconfirmed save is retried verbatim.
type Gacha interface {
	// GetPityState returns the zero state for a player with no record.
	GetPityState(ctx context.Context, playerID string) (domain.PityState, error)
	GetOwnedSpirits(ctx context.Context, playerID string) ([]domain.SpiritID, error)
	SavePullState(ctx context.Context, playerID string, state domain.PityState, acquired []domain.SpiritID) error

	// ResetPityState zeroes all three counters. Owned spirits are kept.
	ResetPityState(ctx context.Context, playerID string) error
}
