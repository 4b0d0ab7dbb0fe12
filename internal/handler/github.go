package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/service"
)

// GitHubHandler connects repositories and exposes their scored commits.
// Every endpoint takes the team from ?teamId=, defaulting to "demo" except
// where noted.
type GitHubHandler struct {
	github *service.GitHubService
	logger *slog.Logger
}

func NewGitHubHandler(svc *service.GitHubService, logger *slog.Logger) *GitHubHandler {
	return &GitHubHandler{github: svc, logger: logger}
}

type connectRequest struct {
	TeamID  string `json:"teamId"`
	RepoURL string `json:"repoUrl"`
}

type repoResponse struct {
	Repo *model.RepoLink `json:"repo"`
}

type commitsResponse struct {
	Commits []model.Commit `json:"commits"`
}

// HandleConnect handles POST /api/github/connect {"teamId", "repoUrl"}
func (h *GitHubHandler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	link, err := h.github.Connect(r.Context(), req.TeamID, req.RepoURL)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// HandleGetRepo handles GET /api/github/repo?teamId= (required). Replies
// {"repo": null} when nothing is connected.
func (h *GitHubHandler) HandleGetRepo(w http.ResponseWriter, r *http.Request) {
	link, err := h.github.GetRepo(r.Context(), teamID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, repoResponse{Repo: link})
}

// HandleListCommits handles GET /api/github/commits?teamId=
func (h *GitHubHandler) HandleListCommits(w http.ResponseWriter, r *http.Request) {
	commits, err := h.github.ListCommits(r.Context(), teamID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, commitsResponse{Commits: commits})
}

// HandleSync handles POST /api/github/commits?teamId=
func (h *GitHubHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	res, err := h.github.Sync(r.Context(), teamID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleStats handles GET /api/github/stats?teamId=
func (h *GitHubHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.github.Stats(r.Context(), teamID(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
