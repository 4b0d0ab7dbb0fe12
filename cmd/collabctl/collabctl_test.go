package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/collabspace/internal/impact"
	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/service"
	"github.com/sakif/collabspace/internal/transcript"
)

// run executes the root command with args against a throwaway database.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("COLLAB_DB_PATH", filepath.Join(t.TempDir(), "cli.db"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		scoreInput = impact.RawCommit{}
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	out, err := run(t, "score", "-m", "feat: refactor auth and database migration",
		"--additions", "300", "--deletions", "200", "--files", "8", "--id", "ffee01")
	require.NoError(t, err)
	assert.Contains(t, out, "Score:   95/100 (High)")
	assert.Contains(t, out, "Insight: ")
}

func TestScoreCommand_RejectsNegative(t *testing.T) {
	_, err := run(t, "score", "--additions=-1")
	assert.Error(t, err)
}

func TestMigrateCommand(t *testing.T) {
	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema version")
}

func TestSeedCommand(t *testing.T) {
	out, err := run(t, "seed")
	require.NoError(t, err)
	assert.Equal(t, "Database seeded successfully (3 projects)\n", out)
}

func TestTranscriptCommand_EmptyTeamPrintsDemo(t *testing.T) {
	out, err := run(t, "transcript", "--team", "nobody")
	require.NoError(t, err)
	assert.Contains(t, out, "Arjun Sharma")
	assert.Contains(t, out, "Dev Kapoor")
	assert.Contains(t, out, "84")
}

func TestWriteTranscript(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTranscript(&buf, transcript.Demo()))

	out := buf.String()
	assert.Contains(t, out, "Leaderboard")
	assert.Contains(t, out, "Priya Nair")
	assert.Contains(t, out, "Contribution")
}

func TestWriteSync(t *testing.T) {
	c := model.Commit{
		RawCommit: impact.RawCommit{
			CommitID:  "abcdef1234567",
			Author:    "Rohit Gupta",
			Message:   "fix: login redirect",
			Additions: 12,
			Deletions: 3,
			Timestamp: time.Now(),
		},
		Result: impact.Result{Score: 28, Level: impact.LevelLow},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSync(&buf, &service.SyncResult{Synced: 1, Commits: []model.Commit{c}}))

	out := buf.String()
	assert.Contains(t, out, "Synced 1 commits")
	assert.Contains(t, out, "abcdef1")
	assert.NotContains(t, out, "abcdef1234567")
	assert.Contains(t, out, "+12/-3")

	buf.Reset()
	require.NoError(t, writeSync(&buf, &service.SyncResult{}))
	assert.Equal(t, "Synced 0 commits\n", buf.String())
}
