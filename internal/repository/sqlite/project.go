package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/collabspace/internal/apperror"
	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/repository"
)

var (
	_ repository.ProjectRepository = (*DB)(nil)
	_ repository.TaskRepository    = (*DB)(nil)
)

// Tech stack and members are small lists that are always read with their
// project, so they are stored as JSON text rather than in child tables.
const projectColumns = `id, name, description, tech_stack, status, team_size, progress,
	category, owner_id, members, created_at, updated_at`

func (db *DB) CreateProject(ctx context.Context, p *model.Project) error {
	now := time.Now().UTC()
	p.ID = xid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now

	stack, members, err := encodeProjectLists(p)
	if err != nil {
		return err
	}
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, stack, p.Status, p.TeamSize, p.Progress,
		p.Category, p.OwnerID, members, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting project: %w", err)
	}
	return nil
}

// GetProject loads the project together with its tasks.
func (db *DB) GetProject(ctx context.Context, id string) (*model.Project, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("project", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting project %s: %w", id, err)
	}

	p.Tasks, err = db.ListTasksByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (db *DB) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (db *DB) UpdateProject(ctx context.Context, p *model.Project) error {
	p.UpdatedAt = time.Now().UTC()
	stack, members, err := encodeProjectLists(p)
	if err != nil {
		return err
	}

	res, err := db.conn.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, tech_stack = ?, status = ?, team_size = ?,
		 progress = ?, category = ?, members = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Description, stack, p.Status, p.TeamSize,
		p.Progress, p.Category, members, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating project %s: %w", p.ID, err)
	}
	return requireAffected(res, "project", p.ID)
}

// DeleteProject relies on ON DELETE CASCADE to remove the project's tasks.
func (db *DB) DeleteProject(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting project %s: %w", id, err)
	}
	return requireAffected(res, "project", id)
}

func scanProject(s scanner) (*model.Project, error) {
	var (
		p       model.Project
		stack   string
		members string
	)
	err := s.Scan(&p.ID, &p.Name, &p.Description, &stack, &p.Status, &p.TeamSize, &p.Progress,
		&p.Category, &p.OwnerID, &members, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(stack), &p.TechStack); err != nil {
		return nil, fmt.Errorf("decoding tech_stack: %w", err)
	}
	if err := json.Unmarshal([]byte(members), &p.Members); err != nil {
		return nil, fmt.Errorf("decoding members: %w", err)
	}
	return &p, nil
}

func encodeProjectLists(p *model.Project) (stack, members string, err error) {
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	if p.Members == nil {
		p.Members = []model.Member{}
	}
	s, err := json.Marshal(p.TechStack)
	if err != nil {
		return "", "", fmt.Errorf("sqlite: encoding tech stack: %w", err)
	}
	m, err := json.Marshal(p.Members)
	if err != nil {
		return "", "", fmt.Errorf("sqlite: encoding members: %w", err)
	}
	return string(s), string(m), nil
}

func requireAffected(res sql.Result, resource, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
