package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
	"github.com/osse101/SpiritSummon_Go/internal/handler"
	"github.com/osse101/SpiritSummon_Go/mocks"
)

func postJSON(t *testing.T, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	return httptest.NewRequest(http.MethodPost, target, &buf)
}

func TestGachaHandler_SinglePull(t *testing.T) {
	handler.InitValidator()

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*mocks.MockGachaService)
		expectedStatus int
		expectedError  string
		check          func(t *testing.T, resp handler.PullResponse)
	}{
		{
			name: "Success",
			body: handler.PullRequest{PlayerID: "player-1"},
			setupMock: func(m *mocks.MockGachaService) {
				m.On("SinglePull", mock.Anything, "player-1").Return(domain.PullResult{
					SpiritID:         "ember-fox",
					Rarity:           domain.RarityRare,
					IsNewAcquisition: true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, resp handler.PullResponse) {
				require.Len(t, resp.Results, 1)
				assert.Equal(t, domain.SpiritID("ember-fox"), resp.Results[0].SpiritID)
				assert.False(t, resp.Unconfirmed)
			},
		},
		{
			name: "Unconfirmed result still returned",
			body: handler.PullRequest{PlayerID: "player-1"},
			setupMock: func(m *mocks.MockGachaService) {
				m.On("SinglePull", mock.Anything, "player-1").Return(domain.PullResult{
					SpiritID:    "moss-sprite",
					Rarity:      domain.RarityCommon,
					Unconfirmed: true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, resp handler.PullResponse) {
				assert.True(t, resp.Unconfirmed)
			},
		},
		{
			name:           "Invalid JSON",
			body:           "{not json",
			setupMock:      func(m *mocks.MockGachaService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgInvalidRequest,
		},
		{
			name:           "Unknown field",
			body:           `{"player_id":"player-1","cout":3}`,
			setupMock:      func(m *mocks.MockGachaService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgInvalidRequest,
		},
		{
			name:           "Trailing data",
			body:           `{"player_id":"player-1"} {"player_id":"player-2"}`,
			setupMock:      func(m *mocks.MockGachaService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgInvalidRequest,
		},
		{
			name:           "Missing player id",
			body:           handler.PullRequest{},
			setupMock:      func(m *mocks.MockGachaService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgInvalidRequestSummary,
		},
		{
			name:           "Whitespace player id",
			body:           handler.PullRequest{PlayerID: "   "},
			setupMock:      func(m *mocks.MockGachaService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgInvalidRequestSummary,
		},
		{
			name: "Persistence unavailable",
			body: handler.PullRequest{PlayerID: "player-1"},
			setupMock: func(m *mocks.MockGachaService) {
				m.On("SinglePull", mock.Anything, "player-1").
					Return(domain.PullResult{}, fmt.Errorf("%w: load pity state", domain.ErrPersistenceUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedError:  handler.ErrMsgUnavailableError,
		},
		{
			name: "Catalog empty",
			body: handler.PullRequest{PlayerID: "player-1"},
			setupMock: func(m *mocks.MockGachaService) {
				m.On("SinglePull", mock.Anything, "player-1").Return(domain.PullResult{}, domain.ErrCatalogEmpty)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  handler.ErrMsgCatalogEmptyError,
		},
		{
			name: "Unknown error is not leaked",
			body: handler.PullRequest{PlayerID: "player-1"},
			setupMock: func(m *mocks.MockGachaService) {
				m.On("SinglePull", mock.Anything, "player-1").Return(domain.PullResult{}, fmt.Errorf("pq: secret table detail"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  handler.ErrMsgGenericServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockGachaService(t)
			tt.setupMock(svc)
			h := handler.NewGachaHandler(svc)

			rec := httptest.NewRecorder()
			h.HandleSinglePull(rec, postJSON(t, "/api/v1/gacha/pull", tt.body))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedError != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedError)
				assert.NotContains(t, rec.Body.String(), "secret table")
			}
			if tt.check != nil {
				var resp handler.PullResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				tt.check(t, resp)
			}
		})
	}
}

func TestGachaHandler_SinglePull_RetryAfterOnUnavailable(t *testing.T) {
	svc := mocks.NewMockGachaService(t)
	svc.On("SinglePull", mock.Anything, "player-1").Return(domain.PullResult{}, domain.ErrPersistenceUnavailable)
	h := handler.NewGachaHandler(svc)

	rec := httptest.NewRecorder()
	h.HandleSinglePull(rec, postJSON(t, "/api/v1/gacha/pull", handler.PullRequest{PlayerID: "player-1"}))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, handler.RetryAfterUnavailable, rec.Header().Get(handler.HeaderRetryAfter))
}

func TestGachaHandler_SinglePull_BodyTooLarge(t *testing.T) {
	svc := mocks.NewMockGachaService(t)
	h := handler.NewGachaHandler(svc)

	rec := httptest.NewRecorder()
	req := postJSON(t, "/api/v1/gacha/pull", handler.PullRequest{PlayerID: strings.Repeat("p", 64)})
	req.Body = http.MaxBytesReader(rec, req.Body, 16)
	h.HandleSinglePull(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), handler.ErrMsgRequestTooLarge)
}

func TestGachaHandler_BatchPull(t *testing.T) {
	handler.InitValidator()

	t.Run("Success", func(t *testing.T) {
		results := make([]domain.PullResult, 10)
		for i := range results {
			results[i] = domain.PullResult{SpiritID: "moss-sprite", Rarity: domain.RarityCommon}
		}
		results[9] = domain.PullResult{SpiritID: "ember-fox", Rarity: domain.RarityRare, IsGuaranteed: true, IsNewAcquisition: true}

		svc := mocks.NewMockGachaService(t)
		svc.On("BatchPull", mock.Anything, "player-1", uint32(10)).Return(results, nil)
		h := handler.NewGachaHandler(svc)

		rec := httptest.NewRecorder()
		h.HandleBatchPull(rec, postJSON(t, "/api/v1/gacha/batch", `{"player_id":"player-1","count":10}`))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp handler.PullResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Results, 10)
		assert.True(t, resp.Results[9].IsGuaranteed)
	})

	t.Run("Missing count uses default batch size", func(t *testing.T) {
		results := make([]domain.PullResult, 3)
		for i := range results {
			results[i] = domain.PullResult{SpiritID: "moss-sprite", Rarity: domain.RarityCommon}
		}
		results[2] = domain.PullResult{SpiritID: "ember-fox", Rarity: domain.RarityRare, IsGuaranteed: true}

		svc := mocks.NewMockGachaService(t)
		svc.On("DefaultBatchSize").Return(uint32(3))
		svc.On("BatchPull", mock.Anything, "player-1", uint32(3)).Return(results, nil)
		h := handler.NewGachaHandler(svc)

		rec := httptest.NewRecorder()
		h.HandleBatchPull(rec, postJSON(t, "/api/v1/gacha/batch", `{"player_id":"player-1"}`))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp handler.PullResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp.Results, 3)
	})

	t.Run("Zero count rejected before service", func(t *testing.T) {
		svc := mocks.NewMockGachaService(t)
		h := handler.NewGachaHandler(svc)

		rec := httptest.NewRecorder()
		h.HandleBatchPull(rec, postJSON(t, "/api/v1/gacha/batch", `{"player_id":"player-1","count":0}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"count"`)
	})

	t.Run("Oversized batch mapped to 400", func(t *testing.T) {
		svc := mocks.NewMockGachaService(t)
		svc.On("BatchPull", mock.Anything, "player-1", uint32(500)).
			Return(nil, fmt.Errorf("%w: 500 (allowed 1..100)", domain.ErrInvalidBatchSize))
		h := handler.NewGachaHandler(svc)

		rec := httptest.NewRecorder()
		h.HandleBatchPull(rec, postJSON(t, "/api/v1/gacha/batch", `{"player_id":"player-1","count":500}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), handler.ErrMsgBatchSizeError)
	})
}

func TestGachaHandler_GetPityStatus(t *testing.T) {
	handler.InitValidator()

	t.Run("Success", func(t *testing.T) {
		status := domain.PityStatus{
			PlayerID:                "player-1",
			State:                   domain.PityState{PullsSinceRare: 3, PullsSinceEpic: 80, TotalPulls: 80},
			PullsUntilRareGuarantee: 7,
			PullsUntilHardPity:      11,
			InSoftPity:              true,
		}
		svc := mocks.NewMockGachaService(t)
		svc.On("GetPityStatus", mock.Anything, "player-1").Return(status, nil)
		h := handler.NewGachaHandler(svc)

		rec := httptest.NewRecorder()
		h.HandleGetPityStatus(rec, httptest.NewRequest(http.MethodGet, "/api/v1/gacha/pity?player_id=player-1", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var got domain.PityStatus
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, status, got)
	})

	t.Run("Missing player id", func(t *testing.T) {
		svc := mocks.NewMockGachaService(t)
		h := handler.NewGachaHandler(svc)

		rec := httptest.NewRecorder()
		h.HandleGetPityStatus(rec, httptest.NewRequest(http.MethodGet, "/api/v1/gacha/pity", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "player_id")
	})

	t.Run("Overlong player id", func(t *testing.T) {
		svc := mocks.NewMockGachaService(t)
		h := handler.NewGachaHandler(svc)

		target := "/api/v1/gacha/pity?player_id=" + strings.Repeat("a", handler.MaxPlayerIDLength+1)
		rec := httptest.NewRecorder()
		h.HandleGetPityStatus(rec, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), handler.ErrMsgInvalidPlayerError)
	})

	t.Run("Store unavailable", func(t *testing.T) {
		svc := mocks.NewMockGachaService(t)
		svc.On("GetPityStatus", mock.Anything, "player-1").Return(domain.PityStatus{}, domain.ErrPersistenceUnavailable)
		h := handler.NewGachaHandler(svc)

		rec := httptest.NewRecorder()
		h.HandleGetPityStatus(rec, httptest.NewRequest(http.MethodGet, "/api/v1/gacha/pity?player_id=player-1", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
