package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/collabspace/internal/apperror"
	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/repository"
	"github.com/sakif/collabspace/internal/transcript"
)

const (
	MaxProjectNameLength = 120
	defaultCategory      = "Web"
)

type ProjectService struct {
	projects repository.ProjectRepository
	logger   *slog.Logger
}

func NewProjectService(projects repository.ProjectRepository, logger *slog.Logger) *ProjectService {
	return &ProjectService{projects: projects, logger: logger}
}

// ProjectInput is the body of a create request. Zero values pick defaults:
// status active, team size 1, category Web.
type ProjectInput struct {
	Name        string
	Description string
	TechStack   []string
	Status      model.ProjectStatus
	TeamSize    int
	Category    string
	Members     []model.Member
}

// ProjectPatch carries the fields of a partial update. Nil fields are left
// unchanged.
type ProjectPatch struct {
	Name        *string
	Description *string
	TechStack   []string
	Status      *model.ProjectStatus
	TeamSize    *int
	Progress    *int
	Category    *string
	Members     []model.Member
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	projects, err := s.projects.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/project: listing: %w", err)
	}
	return projects, nil
}

// Get returns the project with its tasks.
func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	p, err := s.projects.GetProject(ctx, id)
	if err != nil {
		return nil, wrapRepoErr("service/project: getting "+id, err)
	}
	if p.Tasks == nil {
		p.Tasks = []model.Task{}
	}
	return p, nil
}

// Create stores a new project owned by ownerID.
func (s *ProjectService) Create(ctx context.Context, ownerID string, in ProjectInput) (*model.Project, error) {
	if ownerID == "" {
		return nil, apperror.Unauthorized("valid authentication required")
	}
	name := strings.TrimSpace(in.Name)
	if err := validateProjectName(name); err != nil {
		return nil, err
	}

	p := &model.Project{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		TechStack:   in.TechStack,
		Status:      in.Status,
		TeamSize:    in.TeamSize,
		Category:    strings.TrimSpace(in.Category),
		OwnerID:     ownerID,
		Members:     normalizeMembers(in.Members),
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	if p.Status == "" {
		p.Status = model.ProjectActive
	}
	if !p.Status.Valid() {
		return nil, apperror.ValidationFailed("status", "status must be active, completed, paused or planning")
	}
	if p.TeamSize <= 0 {
		p.TeamSize = 1
	}
	if p.Category == "" {
		p.Category = defaultCategory
	}

	if err := s.projects.CreateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("service/project: creating %q: %w", name, err)
	}
	p.Tasks = []model.Task{}

	s.logger.Info("project created",
		slog.String("projectID", p.ID),
		slog.String("ownerID", ownerID),
	)
	return p, nil
}

// Update applies a partial patch. The owner and creation time never change.
func (s *ProjectService) Update(ctx context.Context, id string, patch ProjectPatch) (*model.Project, error) {
	p, err := s.projects.GetProject(ctx, id)
	if err != nil {
		return nil, wrapRepoErr("service/project: loading "+id, err)
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validateProjectName(name); err != nil {
			return nil, err
		}
		p.Name = name
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.TechStack != nil {
		p.TechStack = patch.TechStack
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, apperror.ValidationFailed("status", "status must be active, completed, paused or planning")
		}
		p.Status = *patch.Status
	}
	if patch.TeamSize != nil {
		if *patch.TeamSize < 1 {
			return nil, apperror.ValidationFailed("teamSize", "teamSize must be at least 1")
		}
		p.TeamSize = *patch.TeamSize
	}
	if patch.Progress != nil {
		if *patch.Progress < 0 || *patch.Progress > 100 {
			return nil, apperror.ValidationFailed("progress", "progress must be between 0 and 100")
		}
		p.Progress = *patch.Progress
	}
	if patch.Category != nil {
		p.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Members != nil {
		p.Members = normalizeMembers(patch.Members)
	}

	if err := s.projects.UpdateProject(ctx, p); err != nil {
		return nil, wrapRepoErr("service/project: updating "+id, err)
	}
	return p, nil
}

// Delete removes the project and its tasks.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.DeleteProject(ctx, id); err != nil {
		return wrapRepoErr("service/project: deleting "+id, err)
	}
	s.logger.Info("project deleted", slog.String("projectID", id))
	return nil
}

func validateProjectName(name string) error {
	if name == "" {
		return apperror.ValidationFailed("name", "name is required")
	}
	if len(name) > MaxProjectNameLength {
		return apperror.ValidationFailed("name",
			fmt.Sprintf("name must be %d characters or fewer", MaxProjectNameLength))
	}
	return nil
}

// normalizeMembers fills missing initials and status and defaults the role
// to Developer.
func normalizeMembers(members []model.Member) []model.Member {
	out := make([]model.Member, 0, len(members))
	for _, m := range members {
		m.Name = strings.TrimSpace(m.Name)
		if m.Role == "" {
			m.Role = model.MemberDeveloper
		}
		if m.Initials == "" {
			m.Initials = transcript.Initials(m.Name)
		}
		if m.Status == "" {
			m.Status = "active"
		}
		out = append(out, m)
	}
	return out
}

// wrapRepoErr passes app errors (not found, conflict) through untouched so
// the handler can map them, and adds context to everything else.
func wrapRepoErr(op string, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
