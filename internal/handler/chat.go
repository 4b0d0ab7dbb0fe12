package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/collabspace/internal/service"
)

// ChatHandler serves team chat. Clients poll GET for new messages.
type ChatHandler struct {
	chat   *service.ChatService
	logger *slog.Logger
}

func NewChatHandler(svc *service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{chat: svc, logger: logger}
}

type postMessageRequest struct {
	TeamID         string `json:"teamId"`
	SenderID       string `json:"senderId"`
	SenderName     string `json:"senderName"`
	SenderInitials string `json:"senderInitials"`
	Text           string `json:"text"`
}

// HandleList handles GET /api/chat?teamId=
func (h *ChatHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.chat.List(r.Context(), teamID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// HandlePost handles POST /api/chat
func (h *ChatHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	var req postMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	msg, err := h.chat.Post(r.Context(), service.PostInput{
		TeamID:         req.TeamID,
		SenderID:       req.SenderID,
		SenderName:     req.SenderName,
		SenderInitials: req.SenderInitials,
		Text:           req.Text,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}
