package handler

import (
	"log/slog"
	"net/http"

	"github.com/placekeeper/placekeeper/internal/handler/dto"
	"github.com/placekeeper/placekeeper/internal/seed"
)

// SeedHandler triggers fixture reloads over HTTP.
type SeedHandler struct {
	seeder *seed.Seeder
	logger *slog.Logger
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(seeder *seed.Seeder, logger *slog.Logger) *SeedHandler {
	return &SeedHandler{
		seeder: seeder,
		logger: logger,
	}
}

// Load handles GET /load. It wipes the three collections, reloads the
// limited fixture subset, and returns the enriched dataset.
func (h *SeedHandler) Load(w http.ResponseWriter, r *http.Request) {
	users, err := h.seeder.Reload(r.Context())
	if err != nil {
		h.logger.Error("reload_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "RELOAD_FAILED", "Failed to reload fixture data")
		return
	}

	writeJSON(w, http.StatusOK, dto.LoadResponse{
		Status: "SUCCESS",
		Users:  users,
	})
}
