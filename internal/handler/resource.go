package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/collabspace/internal/auth"
	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/service"
)

type ResourceHandler struct {
	resources *service.ResourceService
	logger    *slog.Logger
}

func NewResourceHandler(svc *service.ResourceService, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{resources: svc, logger: logger}
}

type createResourceRequest struct {
	Title    string             `json:"title"`
	Type     model.ResourceType `json:"type"`
	URL      string             `json:"url"`
	Content  string             `json:"content"`
	Platform string             `json:"platform"`
}

// HandleList handles GET /api/resources
func (h *ResourceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	resources, err := h.resources.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

// HandleCreate handles POST /api/resources. Only JSON bodies are accepted.
func (h *ResourceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createResourceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	res, err := h.resources.Create(r.Context(), userID, service.ResourceInput{
		Title:    req.Title,
		Type:     req.Type,
		URL:      req.URL,
		Content:  req.Content,
		Platform: req.Platform,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
