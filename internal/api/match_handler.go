package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/amora-api/internal/api/shared"
	"github.com/phrazzld/amora-api/internal/domain"
	"github.com/phrazzld/amora-api/internal/service"
)

// MatchResponse is the success payload of POST /api/match.
type MatchResponse struct {
	Score      float32 `json:"score"`
	ProfileAID uint64  `json:"profile_a_id"`
	ProfileBID uint64  `json:"profile_b_id"`
}

// RecordMatchRequest is the payload of POST /api/match/record. The
// profiles are scored in the order given; the addresses identify the two
// ledger accounts the outcome is recorded against.
type RecordMatchRequest struct {
	ProfileA domain.Profile `json:"profile_a"`
	ProfileB domain.Profile `json:"profile_b"`
	AddressA string         `json:"address_a" validate:"required"`
	AddressB string         `json:"address_b" validate:"required"`
}

// RecordMatchResponse is the success payload of POST /api/match/record.
type RecordMatchResponse struct {
	Score        float32 `json:"score"`
	BlockchainTx string  `json:"blockchain_tx"`
}

// MatchHandler handles match scoring requests.
type MatchHandler struct {
	matchService *service.MatchService
	logger       *slog.Logger
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(matchService *service.MatchService, logger *slog.Logger) *MatchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchHandler{matchService: matchService, logger: logger}
}

// Match handles POST /api/match requests. The body is an array of exactly
// two profiles, scored in the order received.
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	var pair []domain.Profile
	if err := shared.DecodeJSON(r, &pair); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if len(pair) != 2 {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Request body must contain exactly two profiles")
		return
	}

	score, err := h.matchService.Match(r.Context(), pair[0], pair[1])
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MatchResponse{
		Score:      score,
		ProfileAID: pair[0].ID,
		ProfileBID: pair[1].ID,
	})
}

// MatchAndRecord handles POST /api/match/record requests: scoring plus a
// ledger transaction. The error message names the stage that failed.
func (h *MatchHandler) MatchAndRecord(w http.ResponseWriter, r *http.Request) {
	var req RecordMatchRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	score, err := h.matchService.MatchAndRecord(r.Context(),
		req.ProfileA, req.ProfileB, req.AddressA, req.AddressB)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, err.Error(), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RecordMatchResponse{
		Score:        score,
		BlockchainTx: "success",
	})
}
