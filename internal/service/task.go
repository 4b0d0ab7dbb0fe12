package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/collabspace/internal/apperror"
	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/repository"
	"github.com/sakif/collabspace/internal/transcript"
)

const MaxTaskTitleLength = 200

// TaskService manages the tasks on a project board. It reads projects to
// enforce who may assign work.
type TaskService struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	logger   *slog.Logger
}

func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository, logger *slog.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, logger: logger}
}

type TaskInput struct {
	Title            string
	Description      string
	Status           model.TaskStatus
	Priority         model.TaskPriority
	AssigneeName     string
	AssigneeInitials string
	DueDate          string
}

func (s *TaskService) ListByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	tasks, err := s.tasks.ListTasksByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("service/task: listing for project %s: %w", projectID, err)
	}
	return tasks, nil
}

// Create adds a task to a project. Only the project owner or a member with
// the Lead role may do this.
func (s *TaskService) Create(ctx context.Context, userID, projectID string, in TaskInput) (*model.Task, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("valid authentication required")
	}

	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, wrapRepoErr("service/task: loading project "+projectID, err)
	}
	if !project.CanAssignTasks(userID) {
		s.logger.Warn("task assignment denied",
			slog.String("projectID", projectID),
			slog.String("userID", userID),
		)
		return nil, apperror.Forbidden("Only Admins/Leaders can assign tasks")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if len(title) > MaxTaskTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or fewer", MaxTaskTitleLength))
	}

	t := &model.Task{
		ProjectID:        projectID,
		Title:            title,
		Description:      strings.TrimSpace(in.Description),
		Status:           in.Status,
		Priority:         in.Priority,
		AssigneeName:     strings.TrimSpace(in.AssigneeName),
		AssigneeInitials: in.AssigneeInitials,
		DueDate:          in.DueDate,
	}
	if t.Status == "" {
		t.Status = model.TaskTodo
	}
	if !t.Status.Valid() {
		return nil, apperror.ValidationFailed("status", "status must be todo, in-progress or done")
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if !t.Priority.Valid() {
		return nil, apperror.ValidationFailed("priority", "priority must be low, medium or high")
	}
	if t.AssigneeInitials == "" && t.AssigneeName != "" {
		t.AssigneeInitials = transcript.Initials(t.AssigneeName)
	}

	if err := s.tasks.CreateTask(ctx, t); err != nil {
		return nil, wrapRepoErr("service/task: creating", err)
	}

	s.logger.Info("task created",
		slog.String("taskID", t.ID),
		slog.String("projectID", projectID),
	)
	return t, nil
}

// UpdateStatus moves a task between board columns.
func (s *TaskService) UpdateStatus(ctx context.Context, id string, status model.TaskStatus) (*model.Task, error) {
	if !status.Valid() {
		return nil, apperror.ValidationFailed("status", "status must be todo, in-progress or done")
	}

	t, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return nil, wrapRepoErr("service/task: loading "+id, err)
	}
	t.Status = status
	if err := s.tasks.UpdateTask(ctx, t); err != nil {
		return nil, wrapRepoErr("service/task: updating "+id, err)
	}
	return t, nil
}
