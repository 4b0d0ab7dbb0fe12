// Package repository declares the storage interfaces the service layer
// depends on. Implementations live in subpackages: sqlite for everything,
// localfile for projects and tasks only.
//
// Lookups of a missing row return an error wrapping apperror.ErrNotFound.
package repository

import (
	"context"
	"time"

	"github.com/sakif/collabspace/internal/model"
)

type ListOptions struct {
	Limit  int
	Offset int
}

type UserRepository interface {
	// CreateUser returns apperror.ErrConflict when the email is taken.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// ListUsers returns users ordered by name.
	ListUsers(ctx context.Context, opts ListOptions) ([]model.User, error)
	// SearchUsers matches query case-insensitively against name or email.
	SearchUsers(ctx context.Context, query string, limit int) ([]model.User, error)
}

type ProjectRepository interface {
	CreateProject(ctx context.Context, p *model.Project) error
	GetProject(ctx context.Context, id string) (*model.Project, error)
	// ListProjects returns projects newest first.
	ListProjects(ctx context.Context) ([]model.Project, error)
	UpdateProject(ctx context.Context, p *model.Project) error
	// DeleteProject removes the project and its tasks.
	DeleteProject(ctx context.Context, id string) error
}

type TaskRepository interface {
	CreateTask(ctx context.Context, t *model.Task) error
	GetTask(ctx context.Context, id string) (*model.Task, error)
	// ListTasksByProject returns the project's tasks newest first.
	ListTasksByProject(ctx context.Context, projectID string) ([]model.Task, error)
	// ListAllTasks returns every task across all projects.
	ListAllTasks(ctx context.Context) ([]model.Task, error)
	UpdateTask(ctx context.Context, t *model.Task) error
}

type CommitRepository interface {
	// UpsertCommits inserts or updates commits keyed by (CommitID, TeamID).
	// Re-syncing the same commit never creates a second row.
	UpsertCommits(ctx context.Context, commits []model.Commit) error
	// ListCommits returns the team's commits newest first. limit <= 0 means all.
	ListCommits(ctx context.Context, teamID string, limit int) ([]model.Commit, error)
}

type RepoLinkRepository interface {
	// UpsertRepoLink connects a repository to a team, replacing any previous link.
	UpsertRepoLink(ctx context.Context, link *model.RepoLink) error
	GetRepoLink(ctx context.Context, teamID string) (*model.RepoLink, error)
	MarkRepoSynced(ctx context.Context, teamID string, at time.Time) error
}

type ChatRepository interface {
	CreateMessage(ctx context.Context, msg *model.ChatMessage) error
	// ListMessages returns the most recent messages oldest first.
	ListMessages(ctx context.Context, teamID string, limit int) ([]model.ChatMessage, error)
}

type ResourceRepository interface {
	// CreateResource returns apperror.ErrNotFound when AddedBy is not a user.
	CreateResource(ctx context.Context, r *model.Resource) error
	// ListResources returns the library newest first with AddedByName filled in.
	ListResources(ctx context.Context) ([]model.Resource, error)
}
