package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
	"github.com/osse101/SpiritSummon_Go/internal/logger"
	"github.com/osse101/SpiritSummon_Go/internal/repository"
)

const logMsgRollbackFailed = "Failed to roll back pull state transaction"

const (
	queryGetPityState = `
SELECT pulls_since_rare, pulls_since_epic, total_pulls
FROM pity_states
WHERE player_id = $1`

	queryGetOwnedSpirits = `
SELECT spirit_id
FROM owned_spirits
WHERE player_id = $1
ORDER BY spirit_id`

	queryUpsertPityState = `
INSERT INTO pity_states (player_id, pulls_since_rare, pulls_since_epic, total_pulls, updated_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (player_id) DO UPDATE SET
    pulls_since_rare = EXCLUDED.pulls_since_rare,
    pulls_since_epic = EXCLUDED.pulls_since_epic,
    total_pulls      = EXCLUDED.total_pulls,
    updated_at       = NOW()`

	queryInsertOwnedSpirits = `
INSERT INTO owned_spirits (player_id, spirit_id)
SELECT $1, unnest($2::text[])
ON CONFLICT (player_id, spirit_id) DO NOTHING`

	queryResetPityState = `
UPDATE pity_states
SET pulls_since_rare = 0, pulls_since_epic = 0, total_pulls = 0, updated_at = NOW()
WHERE player_id = $1`
)

// GachaRepository implements repository.Gacha for PostgreSQL
type GachaRepository struct {
	db *pgxpool.Pool
}

var _ repository.Gacha = (*GachaRepository)(nil)

// NewGachaRepository creates a new GachaRepository
func NewGachaRepository(db *pgxpool.Pool) *GachaRepository {
	return &GachaRepository{db: db}
}

func (r *GachaRepository) GetPityState(ctx context.Context, playerID string) (domain.PityState, error) {
	var rare, epic, total int64
	err := r.db.QueryRow(ctx, queryGetPityState, playerID).Scan(&rare, &epic, &total)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PityState{}, nil
	}
	if err != nil {
		return domain.PityState{}, fmt.Errorf("failed to get pity state: %w", err)
	}
	return domain.PityState{
		PullsSinceRare: uint32(rare),
		PullsSinceEpic: uint32(epic),
		TotalPulls:     uint32(total),
	}, nil
}

func (r *GachaRepository) GetOwnedSpirits(ctx context.Context, playerID string) ([]domain.SpiritID, error) {
	rows, err := r.db.Query(ctx, queryGetOwnedSpirits, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get owned spirits: %w", err)
	}

	ids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SpiritID, error) {
		var id string
		err := row.Scan(&id)
		return domain.SpiritID(id), err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan owned spirits: %w", err)
	}
	return ids, nil
}

// SavePullState upserts the counters and inserts acquired spirits atomically.
// Re-running it with the same arguments is a no-op.
func (r *GachaRepository) SavePullState(ctx context.Context, playerID string, state domain.PityState, acquired []domain.SpiritID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback after a successful Commit returns ErrTxClosed.
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.FromContext(ctx).Error(logMsgRollbackFailed, "player_id", playerID, "error", rbErr)
		}
	}()

	if _, err := tx.Exec(ctx, queryUpsertPityState,
		playerID,
		int64(state.PullsSinceRare),
		int64(state.PullsSinceEpic),
		int64(state.TotalPulls),
	); err != nil {
		return fmt.Errorf("failed to upsert pity state: %w", err)
	}

	if len(acquired) > 0 {
		ids := make([]string, len(acquired))
		for i, id := range acquired {
			ids[i] = string(id)
		}
		if _, err := tx.Exec(ctx, queryInsertOwnedSpirits, playerID, ids); err != nil {
			return fmt.Errorf("failed to insert owned spirits: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *GachaRepository) ResetPityState(ctx context.Context, playerID string) error {
	if _, err := r.db.Exec(ctx, queryResetPityState, playerID); err != nil {
		return fmt.Errorf("failed to reset pity state: %w", err)
	}
	return nil
}
