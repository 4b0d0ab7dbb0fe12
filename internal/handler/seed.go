package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/collabspace/internal/service"
)

type SeedHandler struct {
	seeder *service.Seeder
	logger *slog.Logger
}

func NewSeedHandler(seeder *service.Seeder, logger *slog.Logger) *SeedHandler {
	return &SeedHandler{seeder: seeder, logger: logger}
}

// HandleSeed handles POST /api/seed. It fills an empty board with demo
// projects and is a no-op once any project exists.
func (h *SeedHandler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	res, err := h.seeder.Seed(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
