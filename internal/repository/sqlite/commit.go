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
	"github.com/sakif/collabspace/internal/repository"
)

var (
	_ repository.CommitRepository   = (*DB)(nil)
	_ repository.RepoLinkRepository = (*DB)(nil)
)

const commitColumns = `id, team_id, commit_id, author, author_avatar, message, files_changed,
	additions, deletions, timestamp, url, impact_score, impact_level, impact_insight,
	created_at, updated_at`

// UpsertCommits writes all commits in one transaction. On a (commit_id,
// team_id) conflict the existing row keeps its id and created_at and takes
// the new values for everything else. ID, CreatedAt and UpdatedAt on the
// passed commits are set from the stored rows.
func (db *DB) UpsertCommits(ctx context.Context, commits []model.Commit) error {
	if len(commits) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning commit upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO commits (`+commitColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (commit_id, team_id) DO UPDATE SET
			author = excluded.author,
			author_avatar = excluded.author_avatar,
			message = excluded.message,
			files_changed = excluded.files_changed,
			additions = excluded.additions,
			deletions = excluded.deletions,
			timestamp = excluded.timestamp,
			url = excluded.url,
			impact_score = excluded.impact_score,
			impact_level = excluded.impact_level,
			impact_insight = excluded.impact_insight,
			updated_at = excluded.updated_at
		 RETURNING id`)
	if err != nil {
		return fmt.Errorf("sqlite: preparing commit upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i := range commits {
		c := &commits[i]
		newID := xid.New().String()
		err := stmt.QueryRowContext(ctx,
			newID, c.TeamID, c.CommitID, c.Author, c.AuthorAvatar, c.Message, c.FilesChanged,
			c.Additions, c.Deletions, c.Timestamp.UTC(), c.URL, c.Score, c.Level, c.Insight,
			now, now,
		).Scan(&c.ID)
		if err != nil {
			return fmt.Errorf("sqlite: upserting commit %s: %w", c.CommitID, err)
		}
		c.UpdatedAt = now
		if c.ID == newID {
			c.CreatedAt = now
			continue
		}
		// Existing row: keep its original creation time.
		err = tx.QueryRowContext(ctx, `SELECT created_at FROM commits WHERE id = ?`, c.ID).Scan(&c.CreatedAt)
		if err != nil {
			return fmt.Errorf("sqlite: reading commit %s: %w", c.CommitID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing commit upsert: %w", err)
	}
	return nil
}

func (db *DB) ListCommits(ctx context.Context, teamID string, limit int) ([]model.Commit, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+commitColumns+` FROM commits WHERE team_id = ?
		 ORDER BY timestamp DESC, id DESC LIMIT ?`, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing commits for %s: %w", teamID, err)
	}
	defer rows.Close()

	commits := []model.Commit{}
	for rows.Next() {
		var c model.Commit
		err := rows.Scan(&c.ID, &c.TeamID, &c.CommitID, &c.Author, &c.AuthorAvatar, &c.Message,
			&c.FilesChanged, &c.Additions, &c.Deletions, &c.Timestamp, &c.URL,
			&c.Score, &c.Level, &c.Insight, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning commit: %w", err)
		}
		commits = append(commits, c)
	}
	return commits, rows.Err()
}

func (db *DB) UpsertRepoLink(ctx context.Context, l *model.RepoLink) error {
	if l.ConnectedAt.IsZero() {
		l.ConnectedAt = time.Now().UTC()
	}
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO repo_links (team_id, repo_url, owner, name, connected_at, last_synced_at)
		 VALUES (?, ?, ?, ?, ?, NULL)
		 ON CONFLICT (team_id) DO UPDATE SET
			repo_url = excluded.repo_url,
			owner = excluded.owner,
			name = excluded.name,
			connected_at = excluded.connected_at`,
		l.TeamID, l.RepoURL, l.Owner, l.Name, l.ConnectedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: saving repo link for %s: %w", l.TeamID, err)
	}

	// A reconnect keeps the previous sync time.
	var synced sql.NullTime
	err = db.conn.QueryRowContext(ctx,
		`SELECT last_synced_at FROM repo_links WHERE team_id = ?`, l.TeamID,
	).Scan(&synced)
	if err != nil {
		return fmt.Errorf("sqlite: reading repo link for %s: %w", l.TeamID, err)
	}
	l.LastSyncedAt = nil
	if synced.Valid {
		l.LastSyncedAt = &synced.Time
	}
	return nil
}

func (db *DB) GetRepoLink(ctx context.Context, teamID string) (*model.RepoLink, error) {
	var (
		l      model.RepoLink
		synced sql.NullTime
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT team_id, repo_url, owner, name, connected_at, last_synced_at
		 FROM repo_links WHERE team_id = ?`, teamID,
	).Scan(&l.TeamID, &l.RepoURL, &l.Owner, &l.Name, &l.ConnectedAt, &synced)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("repository link", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting repo link for %s: %w", teamID, err)
	}
	if synced.Valid {
		l.LastSyncedAt = &synced.Time
	}
	return &l, nil
}

func (db *DB) MarkRepoSynced(ctx context.Context, teamID string, at time.Time) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE repo_links SET last_synced_at = ? WHERE team_id = ?`, at.UTC(), teamID)
	if err != nil {
		return fmt.Errorf("sqlite: marking %s synced: %w", teamID, err)
	}
	return requireAffected(res, "repository link", teamID)
}
