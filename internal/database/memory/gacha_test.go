package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
)

func TestGachaRepository_UnknownPlayer(t *testing.T) {
	repo := NewGachaRepository()
	ctx := context.Background()

	state, err := repo.GetPityState(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, domain.PityState{}, state)

	owned, err := repo.GetOwnedSpirits(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestGachaRepository_SaveIsIdempotent(t *testing.T) {
	repo := NewGachaRepository()
	ctx := context.Background()
	state := domain.PityState{PullsSinceRare: 2, PullsSinceEpic: 5, TotalPulls: 9}

	require.NoError(t, repo.SavePullState(ctx, "p1", state, []domain.SpiritID{"b", "a"}))
	require.NoError(t, repo.SavePullState(ctx, "p1", state, []domain.SpiritID{"b", "a"}))

	got, err := repo.GetPityState(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, state, got)

	owned, err := repo.GetOwnedSpirits(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []domain.SpiritID{"a", "b"}, owned)
}

func TestGachaRepository_ResetKeepsOwnership(t *testing.T) {
	repo := NewGachaRepository()
	ctx := context.Background()

	require.NoError(t, repo.SavePullState(ctx, "p1", domain.PityState{PullsSinceRare: 3, PullsSinceEpic: 3, TotalPulls: 3}, []domain.SpiritID{"a"}))
	require.NoError(t, repo.ResetPityState(ctx, "p1"))

	state, err := repo.GetPityState(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.PityState{}, state)

	owned, err := repo.GetOwnedSpirits(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []domain.SpiritID{"a"}, owned)
}

func TestGachaRepository_CancelledContext(t *testing.T) {
	repo := NewGachaRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetPityState(ctx, "p1")
	assert.ErrorIs(t, err, context.Canceled)
}
