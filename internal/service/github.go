package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/collabspace/internal/apperror"
	"github.com/sakif/collabspace/internal/github"
	"github.com/sakif/collabspace/internal/impact"
	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/repository"
	"github.com/sakif/collabspace/internal/transcript"
)

const (
	DefaultTeamID = "demo"

	// recentCommitsLimit is how many commits the commit feed shows.
	recentCommitsLimit = 30
)

// CommitFetcher reads raw commits from a source-control host.
// *github.Client satisfies it.
type CommitFetcher interface {
	FetchCommits(ctx context.Context, owner, repo string, limit int) ([]impact.RawCommit, error)
}

// GitHubService connects team repositories, syncs and scores their commits,
// and summarises the results.
type GitHubService struct {
	links     repository.RepoLinkRepository
	commits   repository.CommitRepository
	fetcher   CommitFetcher
	syncLimit int
	now       func() time.Time
	logger    *slog.Logger
}

func NewGitHubService(
	links repository.RepoLinkRepository,
	commits repository.CommitRepository,
	fetcher CommitFetcher,
	syncLimit int,
	logger *slog.Logger,
) *GitHubService {
	if syncLimit <= 0 {
		syncLimit = github.DefaultListLimit
	}
	return &GitHubService{
		links:     links,
		commits:   commits,
		fetcher:   fetcher,
		syncLimit: syncLimit,
		now:       time.Now,
		logger:    logger,
	}
}

// SyncResult is what a sync stored: the number of commits and the commits
// themselves, already scored.
type SyncResult struct {
	Synced  int            `json:"synced"`
	Commits []model.Commit `json:"commits"`
}

func teamOrDefault(teamID string) string {
	if teamID = strings.TrimSpace(teamID); teamID == "" {
		return DefaultTeamID
	}
	return teamID
}

// Connect links repoURL to the team, replacing any earlier link.
func (s *GitHubService) Connect(ctx context.Context, teamID, repoURL string) (*model.RepoLink, error) {
	teamID = strings.TrimSpace(teamID)
	repoURL = strings.TrimSpace(repoURL)
	if teamID == "" || repoURL == "" {
		return nil, apperror.ValidationFailed("repoUrl", "teamId and repoUrl are required")
	}

	owner, name, ok := github.ParseRepoURL(repoURL)
	if !ok {
		return nil, apperror.ValidationFailed("repoUrl",
			"Invalid GitHub repository URL. Use format: https://github.com/owner/repo")
	}

	link := &model.RepoLink{
		TeamID:      teamID,
		RepoURL:     repoURL,
		Owner:       owner,
		Name:        name,
		ConnectedAt: s.now().UTC(),
	}
	if err := s.links.UpsertRepoLink(ctx, link); err != nil {
		return nil, fmt.Errorf("service/github: saving link for %s: %w", teamID, err)
	}

	s.logger.Info("repository connected",
		slog.String("teamID", teamID),
		slog.String("repo", owner+"/"+name),
	)
	return link, nil
}

// GetRepo returns the team's linked repository, or nil when there is none.
func (s *GitHubService) GetRepo(ctx context.Context, teamID string) (*model.RepoLink, error) {
	if strings.TrimSpace(teamID) == "" {
		return nil, apperror.ValidationFailed("teamId", "teamId is required")
	}
	link, err := s.links.GetRepoLink(ctx, teamID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("service/github: loading link for %s: %w", teamID, err)
	}
	return link, nil
}

// Sync pulls the latest commits of the team's repository, scores each one
// and upserts them. Running it twice never duplicates a commit.
func (s *GitHubService) Sync(ctx context.Context, teamID string) (*SyncResult, error) {
	teamID = teamOrDefault(teamID)

	link, err := s.links.GetRepoLink(ctx, teamID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, &apperror.AppError{Err: apperror.ErrNotFound, Message: "No repository connected for this team."}
	}
	if err != nil {
		return nil, fmt.Errorf("service/github: loading link for %s: %w", teamID, err)
	}

	start := s.now()
	raw, err := s.fetcher.FetchCommits(ctx, link.Owner, link.Name, s.syncLimit)
	if err != nil {
		return nil, fmt.Errorf("service/github: fetching %s/%s: %w", link.Owner, link.Name, err)
	}

	commits := make([]model.Commit, 0, len(raw))
	for _, rc := range raw {
		commits = append(commits, model.Commit{
			TeamID:    teamID,
			RawCommit: rc,
			Result:    impact.Analyze(rc),
		})
	}
	if err := s.commits.UpsertCommits(ctx, commits); err != nil {
		return nil, fmt.Errorf("service/github: storing commits for %s: %w", teamID, err)
	}
	if err := s.links.MarkRepoSynced(ctx, teamID, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("service/github: stamping sync for %s: %w", teamID, err)
	}

	s.logger.Info("commits synced",
		slog.String("teamID", teamID),
		slog.String("repo", link.Owner+"/"+link.Name),
		slog.Int("count", len(commits)),
		slog.Duration("took", s.now().Sub(start)),
	)
	return &SyncResult{Synced: len(commits), Commits: commits}, nil
}

// ListCommits returns the team's most recent scored commits, newest first.
func (s *GitHubService) ListCommits(ctx context.Context, teamID string) ([]model.Commit, error) {
	teamID = teamOrDefault(teamID)
	commits, err := s.commits.ListCommits(ctx, teamID, recentCommitsLimit)
	if err != nil {
		return nil, fmt.Errorf("service/github: listing commits for %s: %w", teamID, err)
	}
	return commits, nil
}

// Stats aggregates every stored commit of the team.
func (s *GitHubService) Stats(ctx context.Context, teamID string) (*model.CommitStats, error) {
	teamID = teamOrDefault(teamID)
	commits, err := s.commits.ListCommits(ctx, teamID, 0)
	if err != nil {
		return nil, fmt.Errorf("service/github: loading commits for %s: %w", teamID, err)
	}
	stats := CommitStats(commits)
	return &stats, nil
}

// CommitStats summarises commits, which must be ordered newest first.
// RecentHighImpact is the newest High commit; HighestImpactCommit is the
// first commit holding the maximum score.
func CommitStats(commits []model.Commit) model.CommitStats {
	var stats model.CommitStats
	if len(commits) == 0 {
		return stats
	}

	stats.TotalCommits = len(commits)
	for i := range commits {
		c := &commits[i]
		stats.TotalImpactScore += c.Score
		if stats.HighestImpactCommit == nil || c.Score > stats.HighestImpactCommit.Score {
			stats.HighestImpactCommit = c
		}
		if c.Level == impact.LevelHigh {
			stats.HighImpactCount++
			if stats.RecentHighImpact == nil {
				stats.RecentHighImpact = c
			}
		}
	}
	stats.AverageImpactScore = transcript.RoundDiv(stats.TotalImpactScore, stats.TotalCommits)
	return stats
}
