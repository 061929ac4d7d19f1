// Package sqlite provides a single-node SQLite gacha store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/osse101/SpiritSummon_Go/internal/database/migrations"
	"github.com/osse101/SpiritSummon_Go/internal/domain"
	"github.com/osse101/SpiritSummon_Go/internal/logger"
	"github.com/osse101/SpiritSummon_Go/internal/repository"
)

// Store persists pity state and ownership in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ repository.Gacha = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Open opens the database at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite allows one writer; a single connection keeps transactions from
	// tripping over SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := migrations.Up(ctx, sqlDB, migrations.DialectSQLite); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping reports whether the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

func (s *Store) GetPityState(ctx context.Context, playerID string) (domain.PityState, error) {
	var state domain.PityState
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT pulls_since_rare, pulls_since_epic, total_pulls FROM pity_states WHERE player_id = ?`,
		playerID,
	).Scan(&state.PullsSinceRare, &state.PullsSinceEpic, &state.TotalPulls)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PityState{}, nil
	}
	if err != nil {
		return domain.PityState{}, fmt.Errorf("get pity state: %w", err)
	}
	return state, nil
}

func (s *Store) GetOwnedSpirits(ctx context.Context, playerID string) ([]domain.SpiritID, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT spirit_id FROM owned_spirits WHERE player_id = ? ORDER BY spirit_id`,
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("get owned spirits: %w", err)
	}
	defer rows.Close()

	var ids []domain.SpiritID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan owned spirit: %w", err)
		}
		ids = append(ids, domain.SpiritID(id))
	}
	return ids, rows.Err()
}

// SavePullState writes counters and new spirits in one transaction.
func (s *Store) SavePullState(ctx context.Context, playerID string, state domain.PityState, acquired []domain.SpiritID) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer safeRollback(ctx, tx)

	now := toMillis(time.Now())
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO pity_states (player_id, pulls_since_rare, pulls_since_epic, total_pulls, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(player_id) DO UPDATE SET
		   pulls_since_rare = excluded.pulls_since_rare,
		   pulls_since_epic = excluded.pulls_since_epic,
		   total_pulls = excluded.total_pulls,
		   updated_at = excluded.updated_at`,
		playerID, state.PullsSinceRare, state.PullsSinceEpic, state.TotalPulls, now,
	); err != nil {
		return fmt.Errorf("upsert pity state: %w", err)
	}

	for _, id := range acquired {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO owned_spirits (player_id, spirit_id, acquired_at) VALUES (?, ?, ?)`,
			playerID, string(id), now,
		); err != nil {
			return fmt.Errorf("insert owned spirit %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save transaction: %w", err)
	}
	return nil
}

func (s *Store) ResetPityState(ctx context.Context, playerID string) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`UPDATE pity_states SET pulls_since_rare = 0, pulls_since_epic = 0, total_pulls = 0, updated_at = ? WHERE player_id = ?`,
		toMillis(time.Now()), playerID,
	)
	if err != nil {
		return fmt.Errorf("reset pity state: %w", err)
	}
	return nil
}

func safeRollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
