package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/collabspace/internal/apperror"
	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/repository"
)

var _ repository.ResourceRepository = (*DB)(nil)

func (db *DB) CreateResource(ctx context.Context, r *model.Resource) error {
	now := time.Now().UTC()
	r.ID = xid.New().String()
	r.CreatedAt = now
	r.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO resources (id, title, type, url, content, platform, added_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Type, r.URL, r.Content, r.Platform, r.AddedBy, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NotFound("user", r.AddedBy)
		}
		return fmt.Errorf("sqlite: inserting resource: %w", err)
	}

	err = db.conn.QueryRowContext(ctx, `SELECT name FROM users WHERE id = ?`, r.AddedBy).Scan(&r.AddedByName)
	if err != nil {
		return fmt.Errorf("sqlite: reading resource author: %w", err)
	}
	return nil
}

func (db *DB) ListResources(ctx context.Context) ([]model.Resource, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT r.id, r.title, r.type, r.url, r.content, r.platform, r.added_by,
			COALESCE(u.name, ''), r.created_at, r.updated_at
		 FROM resources r LEFT JOIN users u ON u.id = r.added_by
		 ORDER BY r.created_at DESC, r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing resources: %w", err)
	}
	defer rows.Close()

	resources := []model.Resource{}
	for rows.Next() {
		var r model.Resource
		err := rows.Scan(&r.ID, &r.Title, &r.Type, &r.URL, &r.Content, &r.Platform, &r.AddedBy,
			&r.AddedByName, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning resource: %w", err)
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}
