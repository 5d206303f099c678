package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/amora-api/internal/api/shared"
	"github.com/phrazzld/amora-api/internal/domain"
	"github.com/phrazzld/amora-api/internal/registry"
)

// ProfileHandler handles profile registration requests.
type ProfileHandler struct {
	registry registry.ProfileRegistry
	logger   *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(reg registry.ProfileRegistry, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileHandler{registry: reg, logger: logger}
}

// CreateProfile handles POST /api/profiles requests.
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if err := shared.DecodeJSON(r, &profile); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	stored, err := h.registry.Create(profile)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.logger.Info("profile created", "profile_id", stored.ID)
	shared.RespondWithJSON(w, r, http.StatusCreated, stored)
}
