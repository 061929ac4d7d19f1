// Package migrations embeds the schema for every supported storage driver and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/osse101/SpiritSummon_Go/internal/logger"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// Dialect selects the migration set
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// FS returns the migration files for one dialect
func FS(d Dialect) (fs.FS, error) {
	switch d {
	case DialectPostgres, DialectSQLite:
		return fs.Sub(embedded, string(d))
	default:
		return nil, fmt.Errorf("unknown migration dialect %q", d)
	}
}

func gooseDialect(d Dialect) goose.Dialect {
	if d == DialectSQLite {
		return goose.DialectSQLite3
	}
	return goose.DialectPostgres
}

// Up applies every pending migration and returns how many ran.
func Up(ctx context.Context, db *sql.DB, d Dialect) (int, error) {
	fsys, err := FS(d)
	if err != nil {
		return 0, err
	}

	provider, err := goose.NewProvider(gooseDialect(d), db, fsys)
	if err != nil {
		return 0, fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, r := range results {
		logger.FromContext(ctx).Info("Applied migration",
			"dialect", string(d),
			"version", r.Source.Version,
			"duration", r.Duration)
	}
	return len(results), nil
}
