package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_BothDialectsShipSameVersions(t *testing.T) {
	names := func(d Dialect) []string {
		fsys, err := FS(d)
		require.NoError(t, err)
		entries, err := fs.ReadDir(fsys, ".")
		require.NoError(t, err)

		var out []string
		for _, e := range entries {
			content, err := fs.ReadFile(fsys, e.Name())
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(content), "-- +goose Up"), e.Name())
			out = append(out, e.Name())
		}
		return out
	}

	pg := names(DialectPostgres)
	lite := names(DialectSQLite)
	assert.NotEmpty(t, pg)
	assert.Equal(t, pg, lite)
}

func TestFS_UnknownDialect(t *testing.T) {
	_, err := FS("mysql")
	assert.Error(t, err)
}
