package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/collabspace/internal/auth"
	"github.com/sakif/collabspace/internal/service"
)

type TranscriptHandler struct {
	transcripts *service.TranscriptService
	logger      *slog.Logger
}

func NewTranscriptHandler(svc *service.TranscriptService, logger *slog.Logger) *TranscriptHandler {
	return &TranscriptHandler{transcripts: svc, logger: logger}
}

// HandleGet handles GET /api/transcript?teamId= (OptionalAuth). Always 200: a
// team without data, or a store failure, yields the demo transcript.
func (h *TranscriptHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := auth.UserIDFromContext(r.Context())
	writeJSON(w, http.StatusOK, h.transcripts.Build(r.Context(), teamID(r), viewerID))
}
