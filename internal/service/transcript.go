package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/sakif/collabspace/internal/repository"
	"github.com/sakif/collabspace/internal/transcript"
)

// TranscriptService builds the contribution transcript of a team. It never
// fails: when the store cannot be read the demo transcript is returned.
type TranscriptService struct {
	commits repository.CommitRepository
	tasks   repository.TaskRepository
	users   repository.UserRepository
	now     func() time.Time
	logger  *slog.Logger
}

// NewTranscriptService wires the service. users may be nil, in which case
// transcripts are never personalized.
func NewTranscriptService(
	commits repository.CommitRepository,
	tasks repository.TaskRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *TranscriptService {
	return &TranscriptService{
		commits: commits,
		tasks:   tasks,
		users:   users,
		now:     time.Now,
		logger:  logger,
	}
}

// Build aggregates every stored commit of the team and every task. When
// viewerID names a known user, the transcript carries their name and email.
func (s *TranscriptService) Build(ctx context.Context, teamID, viewerID string) transcript.Data {
	teamID = teamOrDefault(teamID)

	commits, err := s.commits.ListCommits(ctx, teamID, 0)
	if err != nil {
		s.logger.Warn("transcript falling back to demo data",
			slog.String("teamID", teamID),
			slog.String("error", err.Error()),
		)
		return s.personalize(ctx, transcript.Demo(), viewerID)
	}
	tasks, err := s.tasks.ListAllTasks(ctx)
	if err != nil {
		s.logger.Warn("transcript falling back to demo data",
			slog.String("teamID", teamID),
			slog.String("error", err.Error()),
		)
		return s.personalize(ctx, transcript.Demo(), viewerID)
	}

	return s.personalize(ctx, transcript.Build(teamID, commits, tasks, s.now()), viewerID)
}

func (s *TranscriptService) personalize(ctx context.Context, d transcript.Data, viewerID string) transcript.Data {
	if s.users == nil || viewerID == "" {
		return d
	}
	user, err := s.users.GetUserByID(ctx, viewerID)
	if err != nil {
		s.logger.Debug("transcript viewer lookup failed",
			slog.String("userID", viewerID),
			slog.String("error", err.Error()),
		)
		return d
	}
	return transcript.Personalize(d, user.Name, user.Email)
}
