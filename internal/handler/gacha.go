package handler

import (
	"net/http"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
	"github.com/osse101/SpiritSummon_Go/internal/gacha"
	"github.com/osse101/SpiritSummon_Go/internal/logger"
)

// PullRequest is the body of a single pull.
type PullRequest struct {
	PlayerID string `json:"player_id" validate:"required,playerid"`
}

// BatchPullRequest is the body of a multi-pull. A missing Count means the
// engine's default batch size; the upper bound is enforced by the engine.
type BatchPullRequest struct {
	PlayerID string  `json:"player_id" validate:"required,playerid"`
	Count    *uint32 `json:"count,omitempty" validate:"omitempty,min=1"`
}

// PullResponse wraps the results of one pull request.
// Unconfirmed is set when the results could not yet be saved durably.
type PullResponse struct {
	Results     []domain.PullResult `json:"results"`
	Unconfirmed bool                `json:"unconfirmed,omitempty"`
}

// GachaHandler serves the player-facing summon endpoints.
type GachaHandler struct {
	gachaSvc gacha.Service
}

// NewGachaHandler creates a new gacha handler
func NewGachaHandler(gachaSvc gacha.Service) *GachaHandler {
	return &GachaHandler{gachaSvc: gachaSvc}
}

// HandleSinglePull performs one draw
func (h *GachaHandler) HandleSinglePull(w http.ResponseWriter, r *http.Request) {
	var req PullRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Single pull"); err != nil {
		return
	}

	result, err := h.gachaSvc.SinglePull(r.Context(), req.PlayerID)
	if err != nil {
		respondServiceError(w, r, "Single pull", err)
		return
	}

	h.respondPull(w, r, req.PlayerID, []domain.PullResult{result})
}

// HandleBatchPull performs a multi-pull with the batch guarantee
func (h *GachaHandler) HandleBatchPull(w http.ResponseWriter, r *http.Request) {
	var req BatchPullRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Batch pull"); err != nil {
		return
	}

	var count uint32
	if req.Count != nil {
		count = *req.Count
	} else {
		count = h.gachaSvc.DefaultBatchSize()
	}

	results, err := h.gachaSvc.BatchPull(r.Context(), req.PlayerID, count)
	if err != nil {
		respondServiceError(w, r, "Batch pull", err)
		return
	}

	h.respondPull(w, r, req.PlayerID, results)
}

// HandleGetPityStatus returns the player's pity counters and countdowns
func (h *GachaHandler) HandleGetPityStatus(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetQueryParam(r, w, "player_id")
	if !ok {
		return
	}
	if err := GetValidator().ValidateVar(playerID, "playerid"); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidPlayerError)
		return
	}

	status, err := h.gachaSvc.GetPityStatus(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "Get pity status", err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}

func (h *GachaHandler) respondPull(w http.ResponseWriter, r *http.Request, playerID string, results []domain.PullResult) {
	log := logger.FromContext(r.Context())

	resp := PullResponse{Results: results}
	for _, res := range results {
		if res.Unconfirmed {
			resp.Unconfirmed = true
			break
		}
	}

	if resp.Unconfirmed {
		log.Warn(LogMsgSummonUnconfirmed, "player_id", playerID, "count", len(results))
	} else {
		log.Info(LogMsgSummonCompleted, "player_id", playerID, "count", len(results))
	}

	respondJSON(w, http.StatusOK, resp)
}
