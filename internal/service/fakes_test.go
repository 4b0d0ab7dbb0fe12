package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/sakif/collabspace/internal/apperror"
	"github.com/sakif/collabspace/internal/impact"
	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/repository"
)

// In-memory fakes of the repository interfaces. Each stores copies so tests
// cannot reach into the fake's state through returned pointers, and each has
// an err field to simulate a failing database.

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct {
	users  map[string]model.User
	nextID int
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]model.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, u *model.User) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperror.Conflict("an account with this email already exists")
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	return &u, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (f *fakeUserRepo) ListUsers(_ context.Context, _ repository.ListOptions) ([]model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b model.User) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (f *fakeUserRepo) SearchUsers(ctx context.Context, q string, limit int) ([]model.User, error) {
	all, err := f.ListUsers(ctx, repository.ListOptions{})
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(q)
	out := []model.User{}
	for _, u := range all {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeBoardRepo implements both ProjectRepository and TaskRepository, like
// the real stores do.
type fakeBoardRepo struct {
	projects map[string]model.Project
	tasks    map[string]model.Task
	nextID   int
	err      error
}

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{
		projects: make(map[string]model.Project),
		tasks:    make(map[string]model.Task),
	}
}

func (f *fakeBoardRepo) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeBoardRepo) CreateProject(_ context.Context, p *model.Project) error {
	if f.err != nil {
		return f.err
	}
	p.ID = f.id("project")
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.projects[p.ID] = *p
	return nil
}

func (f *fakeBoardRepo) GetProject(ctx context.Context, id string) (*model.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.projects[id]
	if !ok {
		return nil, apperror.NotFound("project", id)
	}
	p.Tasks, _ = f.ListTasksByProject(ctx, id)
	return &p, nil
}

func (f *fakeBoardRepo) ListProjects(_ context.Context) ([]model.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Project{}
	for _, p := range f.projects {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeBoardRepo) UpdateProject(_ context.Context, p *model.Project) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.projects[p.ID]; !ok {
		return apperror.NotFound("project", p.ID)
	}
	stored := *p
	stored.Tasks = nil
	f.projects[p.ID] = stored
	return nil
}

func (f *fakeBoardRepo) DeleteProject(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.projects[id]; !ok {
		return apperror.NotFound("project", id)
	}
	delete(f.projects, id)
	for tid, t := range f.tasks {
		if t.ProjectID == id {
			delete(f.tasks, tid)
		}
	}
	return nil
}

func (f *fakeBoardRepo) CreateTask(_ context.Context, t *model.Task) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.projects[t.ProjectID]; !ok {
		return apperror.NotFound("project", t.ProjectID)
	}
	t.ID = f.id("task")
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	f.tasks[t.ID] = *t
	return nil
}

func (f *fakeBoardRepo) GetTask(_ context.Context, id string) (*model.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.tasks[id]
	if !ok {
		return nil, apperror.NotFound("task", id)
	}
	return &t, nil
}

func (f *fakeBoardRepo) ListTasksByProject(_ context.Context, projectID string) ([]model.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Task{}
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeBoardRepo) ListAllTasks(_ context.Context) ([]model.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Task{}
	for _, t := range f.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeBoardRepo) UpdateTask(_ context.Context, t *model.Task) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.tasks[t.ID]; !ok {
		return apperror.NotFound("task", t.ID)
	}
	f.tasks[t.ID] = *t
	return nil
}

// fakeCommitStore implements CommitRepository and RepoLinkRepository.
type fakeCommitStore struct {
	commits []model.Commit
	links   map[string]model.RepoLink
	nextID  int
	err     error
}

func newFakeCommitStore() *fakeCommitStore {
	return &fakeCommitStore{links: make(map[string]model.RepoLink)}
}

func (f *fakeCommitStore) UpsertCommits(_ context.Context, commits []model.Commit) error {
	if f.err != nil {
		return f.err
	}
	for i := range commits {
		c := &commits[i]
		idx := slices.IndexFunc(f.commits, func(s model.Commit) bool {
			return s.CommitID == c.CommitID && s.TeamID == c.TeamID
		})
		if idx >= 0 {
			c.ID = f.commits[idx].ID
			f.commits[idx] = *c
			continue
		}
		f.nextID++
		c.ID = fmt.Sprintf("commit-%d", f.nextID)
		f.commits = append(f.commits, *c)
	}
	return nil
}

func (f *fakeCommitStore) ListCommits(_ context.Context, teamID string, limit int) ([]model.Commit, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Commit{}
	for _, c := range f.commits {
		if c.TeamID == teamID {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Commit) int { return b.Timestamp.Compare(a.Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCommitStore) UpsertRepoLink(_ context.Context, l *model.RepoLink) error {
	if f.err != nil {
		return f.err
	}
	l.LastSyncedAt = nil
	if prev, ok := f.links[l.TeamID]; ok {
		l.LastSyncedAt = prev.LastSyncedAt
	}
	f.links[l.TeamID] = *l
	return nil
}

func (f *fakeCommitStore) GetRepoLink(_ context.Context, teamID string) (*model.RepoLink, error) {
	if f.err != nil {
		return nil, f.err
	}
	l, ok := f.links[teamID]
	if !ok {
		return nil, apperror.NotFound("repository link", teamID)
	}
	return &l, nil
}

func (f *fakeCommitStore) MarkRepoSynced(_ context.Context, teamID string, at time.Time) error {
	if f.err != nil {
		return f.err
	}
	l, ok := f.links[teamID]
	if !ok {
		return apperror.NotFound("repository link", teamID)
	}
	l.LastSyncedAt = &at
	f.links[teamID] = l
	return nil
}

type fakeFetcher struct {
	commits []impact.RawCommit
	err     error

	calls     int
	lastOwner string
	lastRepo  string
	lastLimit int
}

func (f *fakeFetcher) FetchCommits(_ context.Context, owner, repo string, limit int) ([]impact.RawCommit, error) {
	f.calls++
	f.lastOwner, f.lastRepo, f.lastLimit = owner, repo, limit
	if f.err != nil {
		return nil, f.err
	}
	return slices.Clone(f.commits), nil
}

type fakeChatRepo struct {
	messages []model.ChatMessage
	nextID   int
	listErr  error
}

func (f *fakeChatRepo) CreateMessage(_ context.Context, m *model.ChatMessage) error {
	f.nextID++
	m.ID = fmt.Sprintf("msg-%d", f.nextID)
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeChatRepo) ListMessages(_ context.Context, teamID string, limit int) ([]model.ChatMessage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []model.ChatMessage{}
	for _, m := range f.messages {
		if m.TeamID == teamID {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b model.ChatMessage) int { return a.Timestamp.Compare(b.Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type fakeResourceRepo struct {
	resources []model.Resource
	err       error
}

func (f *fakeResourceRepo) CreateResource(_ context.Context, r *model.Resource) error {
	if f.err != nil {
		return f.err
	}
	r.ID = fmt.Sprintf("res-%d", len(f.resources)+1)
	r.AddedByName = "Test User"
	f.resources = append(f.resources, *r)
	return nil
}

func (f *fakeResourceRepo) ListResources(context.Context) ([]model.Resource, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Resource{}
	for i := len(f.resources) - 1; i >= 0; i-- {
		out = append(out, f.resources[i])
	}
	return out, nil
}
