// Package localfile stores projects and their tasks in a single JSON file.
//
// It lets the server run without a database file for demos, with the
// layout {"projects": [{..., "tasks": [...]}]}. Every call reads the file,
// and every write replaces it atomically through a temp file and rename.
// A mutex serialises access within the process; the file is not safe to
// share between processes.
package localfile

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/collabspace/internal/apperror"
	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/repository"
)

var (
	_ repository.ProjectRepository = (*Store)(nil)
	_ repository.TaskRepository    = (*Store)(nil)
)

type document struct {
	Projects []model.Project `json:"projects"`
}

type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a store backed by path. The file and its directory are created
// on the first write.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) load() (*document, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("localfile: reading %s: %w", s.path, err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("localfile: decoding %s: %w", s.path, err)
	}
	return &doc, nil
}

func (s *Store) save(doc *document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("localfile: encoding: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("localfile: creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return fmt.Errorf("localfile: creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("localfile: writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("localfile: closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("localfile: replacing %s: %w", s.path, err)
	}
	return nil
}

// update runs fn on the loaded document and saves it if fn succeeds.
func (s *Store) update(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

func (s *Store) read() (*document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func findProject(doc *document, id string) int {
	return slices.IndexFunc(doc.Projects, func(p model.Project) bool { return p.ID == id })
}

func (s *Store) CreateProject(_ context.Context, p *model.Project) error {
	now := time.Now().UTC()
	p.ID = xid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	if p.Members == nil {
		p.Members = []model.Member{}
	}

	return s.update(func(doc *document) error {
		stored := *p
		stored.Tasks = []model.Task{}
		doc.Projects = append(doc.Projects, stored)
		return nil
	})
}

func (s *Store) GetProject(_ context.Context, id string) (*model.Project, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	i := findProject(doc, id)
	if i < 0 {
		return nil, apperror.NotFound("project", id)
	}
	p := doc.Projects[i]
	sortTasks(p.Tasks)
	return &p, nil
}

// ListProjects returns projects newest first without their tasks, matching
// the SQLite store.
func (s *Store) ListProjects(_ context.Context) ([]model.Project, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make([]model.Project, 0, len(doc.Projects))
	for _, p := range doc.Projects {
		p.Tasks = nil
		out = append(out, p)
	}
	slices.SortStableFunc(out, func(a, b model.Project) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (s *Store) UpdateProject(_ context.Context, p *model.Project) error {
	p.UpdatedAt = time.Now().UTC()
	return s.update(func(doc *document) error {
		i := findProject(doc, p.ID)
		if i < 0 {
			return apperror.NotFound("project", p.ID)
		}
		stored := *p
		stored.Tasks = doc.Projects[i].Tasks
		stored.CreatedAt = doc.Projects[i].CreatedAt
		stored.OwnerID = doc.Projects[i].OwnerID
		doc.Projects[i] = stored
		return nil
	})
}

// DeleteProject removes the project along with its embedded tasks.
func (s *Store) DeleteProject(_ context.Context, id string) error {
	return s.update(func(doc *document) error {
		i := findProject(doc, id)
		if i < 0 {
			return apperror.NotFound("project", id)
		}
		doc.Projects = slices.Delete(doc.Projects, i, i+1)
		return nil
	})
}

func (s *Store) CreateTask(_ context.Context, t *model.Task) error {
	now := time.Now().UTC()
	t.ID = xid.New().String()
	t.CreatedAt = now
	t.UpdatedAt = now

	return s.update(func(doc *document) error {
		i := findProject(doc, t.ProjectID)
		if i < 0 {
			return apperror.NotFound("project", t.ProjectID)
		}
		doc.Projects[i].Tasks = append(doc.Projects[i].Tasks, *t)
		return nil
	})
}

func (s *Store) GetTask(_ context.Context, id string) (*model.Task, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, p := range doc.Projects {
		for _, t := range p.Tasks {
			if t.ID == id {
				return &t, nil
			}
		}
	}
	return nil, apperror.NotFound("task", id)
}

func (s *Store) ListTasksByProject(_ context.Context, projectID string) ([]model.Task, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	tasks := []model.Task{}
	if i := findProject(doc, projectID); i >= 0 {
		tasks = append(tasks, doc.Projects[i].Tasks...)
	}
	sortTasks(tasks)
	return tasks, nil
}

func (s *Store) ListAllTasks(_ context.Context) ([]model.Task, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	tasks := []model.Task{}
	for _, p := range doc.Projects {
		tasks = append(tasks, p.Tasks...)
	}
	return tasks, nil
}

func (s *Store) UpdateTask(_ context.Context, t *model.Task) error {
	t.UpdatedAt = time.Now().UTC()
	return s.update(func(doc *document) error {
		for pi := range doc.Projects {
			tasks := doc.Projects[pi].Tasks
			for ti := range tasks {
				if tasks[ti].ID == t.ID {
					t.ProjectID = tasks[ti].ProjectID
					t.CreatedAt = tasks[ti].CreatedAt
					tasks[ti] = *t
					return nil
				}
			}
		}
		return apperror.NotFound("task", t.ID)
	})
}

// sortTasks orders newest first, with the ID breaking ties.
func sortTasks(tasks []model.Task) {
	slices.SortStableFunc(tasks, func(a, b model.Task) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
