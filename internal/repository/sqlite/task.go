package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/collabspace/internal/apperror"
	"github.com/sakif/collabspace/internal/model"
)

const taskColumns = `id, project_id, title, description, status, priority,
	assignee_name, assignee_initials, due_date, created_at, updated_at`

// CreateTask returns ErrNotFound when the project does not exist.
func (db *DB) CreateTask(ctx context.Context, t *model.Task) error {
	now := time.Now().UTC()
	t.ID = xid.New().String()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority,
		t.AssigneeName, t.AssigneeInitials, t.DueDate, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NotFound("project", t.ProjectID)
		}
		return fmt.Errorf("sqlite: inserting task: %w", err)
	}
	return nil
}

func (db *DB) GetTask(ctx context.Context, id string) (*model.Task, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("task", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting task %s: %w", id, err)
	}
	return t, nil
}

func (db *DB) ListTasksByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY created_at DESC, id DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing tasks for %s: %w", projectID, err)
	}
	return collectTasks(rows)
}

func (db *DB) ListAllTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing tasks: %w", err)
	}
	return collectTasks(rows)
}

func (db *DB) UpdateTask(ctx context.Context, t *model.Task) error {
	t.UpdatedAt = time.Now().UTC()
	res, err := db.conn.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?,
		 assignee_name = ?, assignee_initials = ?, due_date = ?, updated_at = ? WHERE id = ?`,
		t.Title, t.Description, t.Status, t.Priority,
		t.AssigneeName, t.AssigneeInitials, t.DueDate, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating task %s: %w", t.ID, err)
	}
	return requireAffected(res, "task", t.ID)
}

func scanTask(s scanner) (*model.Task, error) {
	var t model.Task
	err := s.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.AssigneeName, &t.AssigneeInitials, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTasks(rows *sql.Rows) ([]model.Task, error) {
	defer rows.Close()
	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}
