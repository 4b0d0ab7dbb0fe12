package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/collabspace/internal/apperror"
	"github.com/sakif/collabspace/internal/impact"
	"github.com/sakif/collabspace/internal/model"
)

var syncTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestGitHubService(fetcher *fakeFetcher) (*GitHubService, *fakeCommitStore) {
	store := newFakeCommitStore()
	svc := NewGitHubService(store, store, fetcher, 0, quietLogger())
	svc.now = func() time.Time { return syncTime }
	return svc, store
}

func TestConnect(t *testing.T) {
	svc, store := newTestGitHubService(&fakeFetcher{})

	link, err := svc.Connect(context.Background(), "team-1", " https://github.com/vercel/next.js.git ")
	require.NoError(t, err)
	assert.Equal(t, "vercel", link.Owner)
	assert.Equal(t, "next.js", link.Name)
	assert.Equal(t, "https://github.com/vercel/next.js.git", link.RepoURL)
	assert.Equal(t, syncTime, link.ConnectedAt)
	assert.Contains(t, store.links, "team-1")
}

func TestConnect_Rejects(t *testing.T) {
	svc, _ := newTestGitHubService(&fakeFetcher{})

	_, err := svc.Connect(context.Background(), "", "https://github.com/a/b")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Connect(context.Background(), "team-1", "https://github.com/only-owner")
	require.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, err.Error(), "https://github.com/owner/repo")
}

func TestGetRepo(t *testing.T) {
	svc, _ := newTestGitHubService(&fakeFetcher{})

	link, err := svc.GetRepo(context.Background(), "team-1")
	require.NoError(t, err)
	assert.Nil(t, link, "no link yet")

	_, err = svc.Connect(context.Background(), "team-1", "octo/repo")
	require.NoError(t, err)
	link, err = svc.GetRepo(context.Background(), "team-1")
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, "octo", link.Owner)

	_, err = svc.GetRepo(context.Background(), " ")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestSync_ScoresAndUpserts(t *testing.T) {
	fetcher := &fakeFetcher{commits: []impact.RawCommit{
		{CommitID: "a1b2c3", Author: "Priya", Message: "typo fix", Additions: 10, Deletions: 5, FilesChanged: 1, Timestamp: syncTime},
		{CommitID: "ffee01", Author: "Rohit", Message: "feat: refactor auth and database migration",
			Additions: 300, Deletions: 200, FilesChanged: 8, Timestamp: syncTime.Add(-time.Hour)},
	}}
	svc, store := newTestGitHubService(fetcher)
	_, err := svc.Connect(context.Background(), "team-1", "https://github.com/octo/repo")
	require.NoError(t, err)

	res, err := svc.Sync(context.Background(), "team-1")
	require.NoError(t, err)

	assert.Equal(t, 2, res.Synced)
	assert.Equal(t, "octo", fetcher.lastOwner)
	assert.Equal(t, "repo", fetcher.lastRepo)
	assert.Equal(t, 20, fetcher.lastLimit)
	assert.Equal(t, 15, res.Commits[0].Score)
	assert.Equal(t, impact.LevelLow, res.Commits[0].Level)
	assert.Equal(t, 95, res.Commits[1].Score)
	assert.Equal(t, "team-1", res.Commits[1].TeamID)

	link := store.links["team-1"]
	require.NotNil(t, link.LastSyncedAt)
	assert.Equal(t, syncTime, *link.LastSyncedAt)

	// A second sync of the same commits updates in place.
	_, err = svc.Sync(context.Background(), "team-1")
	require.NoError(t, err)
	assert.Len(t, store.commits, 2)
}

func TestSync_NoLinkedRepo(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, _ := newTestGitHubService(fetcher)

	_, err := svc.Sync(context.Background(), "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Zero(t, fetcher.calls)
}

func TestSync_FetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("rate limited")}
	svc, store := newTestGitHubService(fetcher)
	_, err := svc.Connect(context.Background(), DefaultTeamID, "octo/repo")
	require.NoError(t, err)

	_, err = svc.Sync(context.Background(), "")
	require.Error(t, err)
	assert.Nil(t, store.links[DefaultTeamID].LastSyncedAt, "failed sync must not be stamped")
}

func TestListCommits_CapsAtThirty(t *testing.T) {
	svc, store := newTestGitHubService(&fakeFetcher{})
	for i := range 35 {
		store.commits = append(store.commits, model.Commit{
			TeamID:    DefaultTeamID,
			RawCommit: impact.RawCommit{CommitID: string(rune('a' + i)), Timestamp: syncTime.Add(time.Duration(i) * time.Minute)},
		})
	}

	commits, err := svc.ListCommits(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, commits, recentCommitsLimit)
	assert.True(t, commits[0].Timestamp.After(commits[1].Timestamp), "newest first")
}

func TestCommitStats(t *testing.T) {
	mk := func(id string, score int) model.Commit {
		return model.Commit{
			RawCommit: impact.RawCommit{CommitID: id},
			Result:    impact.Result{Score: score, Level: impact.LevelFor(score)},
		}
	}

	t.Run("empty", func(t *testing.T) {
		stats := CommitStats(nil)
		assert.Zero(t, stats.TotalCommits)
		assert.Nil(t, stats.HighestImpactCommit)
		assert.Nil(t, stats.RecentHighImpact)
	})

	t.Run("aggregates", func(t *testing.T) {
		// newest first
		commits := []model.Commit{mk("c1", 40), mk("c2", 70), mk("c3", 90), mk("c4", 90), mk("c5", 11)}
		stats := CommitStats(commits)

		assert.Equal(t, 5, stats.TotalCommits)
		assert.Equal(t, 301, stats.TotalImpactScore)
		assert.Equal(t, 60, stats.AverageImpactScore) // 60.2
		assert.Equal(t, 3, stats.HighImpactCount)
		require.NotNil(t, stats.HighestImpactCommit)
		assert.Equal(t, "c3", stats.HighestImpactCommit.CommitID, "first of the tied maxima")
		require.NotNil(t, stats.RecentHighImpact)
		assert.Equal(t, "c2", stats.RecentHighImpact.CommitID)
	})
}
