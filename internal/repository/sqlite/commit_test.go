package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/collabspace/internal/apperror"
	"github.com/sakif/collabspace/internal/impact"
	"github.com/sakif/collabspace/internal/model"
)

func testCommit(team, sha string, ts time.Time, msg string) model.Commit {
	raw := impact.RawCommit{CommitID: sha, Author: "Priya Nair", Message: msg, Additions: 40, Deletions: 10, FilesChanged: 2, Timestamp: ts}
	return model.Commit{TeamID: team, RawCommit: raw, Result: impact.Analyze(raw)}
}

func TestUpsertCommits_NoDuplicates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	batch := []model.Commit{
		testCommit("team-a", "abc123", base, "fix login"),
		testCommit("team-a", "def456", base.Add(time.Hour), "feat: api"),
		testCommit("team-b", "abc123", base, "fix login"),
	}
	require.NoError(t, db.UpsertCommits(ctx, batch))
	firstID := batch[0].ID
	require.NotEmpty(t, firstID)

	// Same commit again with changed content.
	again := []model.Commit{testCommit("team-a", "abc123", base, "fix login and auth")}
	require.NoError(t, db.UpsertCommits(ctx, again))
	assert.Equal(t, firstID, again[0].ID)

	teamA, err := db.ListCommits(ctx, "team-a", 0)
	require.NoError(t, err)
	require.Len(t, teamA, 2)
	assert.Equal(t, "def456", teamA[0].CommitID)
	assert.Equal(t, "fix login and auth", teamA[1].Message)
	assert.Equal(t, again[0].Score, teamA[1].Score)
	assert.Equal(t, again[0].Level, teamA[1].Level)
	assert.True(t, base.Equal(teamA[1].Timestamp))

	teamB, err := db.ListCommits(ctx, "team-b", 0)
	require.NoError(t, err)
	assert.Len(t, teamB, 1)

	limited, err := db.ListCommits(ctx, "team-a", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestUpsertCommits_Empty(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.UpsertCommits(context.Background(), nil))
}

func TestRepoLink(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.GetRepoLink(ctx, "team-a")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.ErrorIs(t, db.MarkRepoSynced(ctx, "team-a", time.Now()), apperror.ErrNotFound)

	link := &model.RepoLink{TeamID: "team-a", RepoURL: "https://github.com/acme/web", Owner: "acme", Name: "web"}
	require.NoError(t, db.UpsertRepoLink(ctx, link))

	synced := time.Date(2026, 2, 11, 8, 0, 0, 0, time.UTC)
	require.NoError(t, db.MarkRepoSynced(ctx, "team-a", synced))

	got, err := db.GetRepoLink(ctx, "team-a")
	require.NoError(t, err)
	assert.Equal(t, "acme", got.Owner)
	require.NotNil(t, got.LastSyncedAt)
	assert.True(t, synced.Equal(*got.LastSyncedAt))

	// Reconnecting replaces the repository but keeps the last sync time.
	relinked := &model.RepoLink{TeamID: "team-a", RepoURL: "acme/api", Owner: "acme", Name: "api"}
	require.NoError(t, db.UpsertRepoLink(ctx, relinked))
	require.NotNil(t, relinked.LastSyncedAt)
	assert.True(t, synced.Equal(*relinked.LastSyncedAt))

	got, err = db.GetRepoLink(ctx, "team-a")
	require.NoError(t, err)
	assert.Equal(t, "api", got.Name)
	require.NotNil(t, got.LastSyncedAt)
	assert.True(t, synced.Equal(*got.LastSyncedAt))

	// A fresh link has never been synced.
	fresh := &model.RepoLink{TeamID: "team-b", RepoURL: "acme/docs", Owner: "acme", Name: "docs"}
	require.NoError(t, db.UpsertRepoLink(ctx, fresh))
	assert.Nil(t, fresh.LastSyncedAt)
}
