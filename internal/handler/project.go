package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/collabspace/internal/auth"
	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/service"
)

// ProjectHandler serves the project board: projects and their tasks.
type ProjectHandler struct {
	projects *service.ProjectService
	tasks    *service.TaskService
	logger   *slog.Logger
}

func NewProjectHandler(projects *service.ProjectService, tasks *service.TaskService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, tasks: tasks, logger: logger}
}

type createProjectRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	TechStack   []string            `json:"techStack"`
	Status      model.ProjectStatus `json:"status"`
	TeamSize    int                 `json:"teamSize"`
	Category    string              `json:"category"`
	Members     []model.Member      `json:"members"`
}

// Pointer fields tell "absent" apart from a zero value.
type patchProjectRequest struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	TechStack   []string             `json:"techStack"`
	Status      *model.ProjectStatus `json:"status"`
	TeamSize    *int                 `json:"teamSize"`
	Progress    *int                 `json:"progress"`
	Category    *string              `json:"category"`
	Members     []model.Member       `json:"members"`
}

type createTaskRequest struct {
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Status           model.TaskStatus   `json:"status"`
	Priority         model.TaskPriority `json:"priority"`
	AssigneeName     string             `json:"assigneeName"`
	AssigneeInitials string             `json:"assigneeInitials"`
	DueDate          string             `json:"dueDate"`
}

type patchTaskRequest struct {
	Status model.TaskStatus `json:"status"`
}

// HandleList handles GET /api/projects
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// HandleGet handles GET /api/projects/{id}, tasks included.
func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleCreate handles POST /api/projects (RequireAuth). The caller becomes the owner.
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	ownerID, _ := auth.UserIDFromContext(r.Context())
	p, err := h.projects.Create(r.Context(), ownerID, service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		TechStack:   req.TechStack,
		Status:      req.Status,
		TeamSize:    req.TeamSize,
		Category:    req.Category,
		Members:     req.Members,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// HandleUpdate handles PATCH /api/projects/{id}
func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req patchProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := h.projects.Update(r.Context(), chi.URLParam(r, "id"), service.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		TechStack:   req.TechStack,
		Status:      req.Status,
		TeamSize:    req.TeamSize,
		Progress:    req.Progress,
		Category:    req.Category,
		Members:     req.Members,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleDelete handles DELETE /api/projects/{id}
func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleListTasks handles GET /api/projects/{id}/tasks
func (h *ProjectHandler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListByProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// HandleCreateTask handles POST /api/projects/{id}/tasks (RequireAuth). Only the
// owner or a Lead member may assign tasks; everyone else gets 403.
func (h *ProjectHandler) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	t, err := h.tasks.Create(r.Context(), userID, chi.URLParam(r, "id"), service.TaskInput{
		Title:            req.Title,
		Description:      req.Description,
		Status:           req.Status,
		Priority:         req.Priority,
		AssigneeName:     req.AssigneeName,
		AssigneeInitials: req.AssigneeInitials,
		DueDate:          req.DueDate,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// HandleUpdateTask handles PATCH /api/tasks/{id} with {"status": "done"}
func (h *ProjectHandler) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req patchTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	t, err := h.tasks.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
