package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleVersion_ReportsBanner(t *testing.T) {
	banner := BannerInfo{
		CatalogVersion: "2",
		Spirits:        20,
		EligibleByTier: map[string]int{"common": 6, "legendary": 2},
		TuningHash:     "0123456789ab",
		BatchSize:      10,
	}

	w := httptest.NewRecorder()
	HandleVersion(banner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var info VersionInfo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&info))
	assert.Equal(t, banner, info.Banner)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Version)
}

func TestResolveVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "v1.4.0"
	assert.Equal(t, "v1.4.0", resolveVersion())

	Version = "dev"
	t.Setenv("VERSION", "v1.5.0-rc1")
	assert.Equal(t, "v1.5.0-rc1", resolveVersion())

	t.Setenv("VERSION", "")
	assert.Equal(t, "dev", resolveVersion())
}
