package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpiritSummon_Go/internal/catalog"
	"github.com/osse101/SpiritSummon_Go/internal/database/memory"
	"github.com/osse101/SpiritSummon_Go/internal/domain"
	"github.com/osse101/SpiritSummon_Go/internal/gacha"
	"github.com/osse101/SpiritSummon_Go/internal/handler"
)

const testAPIKey = "test-api-key"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cat, err := catalog.New([]domain.Spirit{
		{ID: "moss-sprite", Name: "Moss Sprite", Rarity: domain.RarityCommon},
		{ID: "gust-wisp", Name: "Gust Wisp", Rarity: domain.RarityUncommon},
		{ID: "ember-fox", Name: "Ember Fox", Rarity: domain.RarityRare},
		{ID: "storm-roc", Name: "Storm Roc", Rarity: domain.RarityEpic},
		{ID: "dawn-phoenix", Name: "Dawn Phoenix", Rarity: domain.RarityLegendary},
	})
	require.NoError(t, err)

	svc, err := gacha.NewService(memory.NewGachaRepository(), cat, gacha.DefaultConfig(), gacha.NewSeededRNG(7), nil, nil)
	require.NoError(t, err)

	banner := handler.BannerInfo{
		CatalogVersion: "test",
		Spirits:        cat.Len(),
		EligibleByTier: cat.EligibleCounts(),
		TuningHash:     gacha.DefaultConfig().Fingerprint(),
		BatchSize:      svc.DefaultBatchSize(),
	}
	srv := NewServer(0, testAPIKey, nil, nil, svc, banner)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, method, url, body string, authed bool) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if authed {
		req.Header.Set(HeaderAPIKey, testAPIKey)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer_PullFlow(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/v1/gacha/pull", `{"player_id":"alice"}`, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var single handler.PullResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&single))
	require.Len(t, single.Results, 1)
	assert.True(t, single.Results[0].IsNewAcquisition)

	resp = doRequest(t, http.MethodPost, ts.URL+"/api/v1/gacha/batch", `{"player_id":"alice","count":10}`, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var batch handler.PullResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&batch))
	require.Len(t, batch.Results, 10)

	hasRare := false
	for _, r := range batch.Results {
		if r.Rarity.AtLeast(domain.RarityRare) {
			hasRare = true
		}
	}
	assert.True(t, hasRare, "a batch always carries at least one rare or better")

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/v1/gacha/pity?player_id=alice", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status domain.PityStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, uint32(11), status.State.TotalPulls)
	assert.Equal(t, "alice", status.PlayerID)
}

func TestServer_RequiresAPIKey(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/v1/gacha/pull", `{"player_id":"alice"}`, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, ts.URL+"/healthz", "", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, ts.URL+"/readyz", "", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, ts.URL+"/metrics", "", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_NoResetRoute(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/v1/gacha/reset", "/api/v1/gacha/pity/reset"} {
		resp := doRequest(t, http.MethodPost, ts.URL+path, `{"player_id":"alice"}`, true)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestServer_VersionReportsBanner(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, http.MethodGet, ts.URL+"/version", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info handler.VersionInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "test", info.Banner.CatalogVersion)
	assert.Equal(t, 5, info.Banner.Spirits)
	assert.Equal(t, gacha.DefaultConfig().Fingerprint(), info.Banner.TuningHash)
	assert.Equal(t, uint32(10), info.Banner.BatchSize)
}

func TestServer_BatchDefaultCount(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/v1/gacha/batch", `{"player_id":"alice"}`, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var batch handler.PullResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&batch))
	assert.Len(t, batch.Results, int(gacha.DefaultConfig().BatchPullCount))
}

func TestServer_BatchTooLarge(t *testing.T) {
	ts := newTestServer(t)

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/v1/gacha/batch", `{"player_id":"alice","count":1000}`, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/v1/gacha/pity?player_id=alice", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status domain.PityStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, uint32(0), status.State.TotalPulls)
}
