package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	store  string
	logger *slog.Logger
}

// NewHealthHandler reports on db. store names the backend projects and tasks
// are kept in ("sqlite" or "local").
func NewHealthHandler(db Pinger, store string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, store: store, logger: logger}
}

type databaseStatus struct {
	Status string  `json:"status"`
	Type   string  `json:"type"`
	Store  string  `json:"store"`
	Error  *string `json:"error"`
}

type healthResponse struct {
	OK       bool              `json:"ok"`
	Database databaseStatus    `json:"database"`
	Manifest map[string]string `json:"manifest"`
}

// HandleHealth handles GET /api/health. Always 200 so load balancers can tell a
// live process from a dead one; database trouble is reported in the body.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	db := databaseStatus{Status: "connected", Type: "SQLite", Store: h.store}
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("health check: database unreachable", slog.String("error", err.Error()))
		msg := err.Error()
		db.Status = "unreachable"
		db.Error = &msg
	}

	writeJSON(w, http.StatusOK, healthResponse{
		OK:       true,
		Database: db,
		Manifest: map[string]string{
			"app":      "CollabSpace",
			"health":   "/api/health",
			"projects": "/api/projects",
		},
	})
}
