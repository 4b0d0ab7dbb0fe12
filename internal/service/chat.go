package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/collabspace/internal/apperror"
	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/repository"
)

const (
	// chatHistoryLimit is how many of the newest messages a poll returns.
	chatHistoryLimit = 200

	MaxChatTextLength = 2000

	defaultSenderID       = "current-user"
	defaultSenderName     = "You"
	defaultSenderInitials = "U"
)

// ChatService stores team chat. A team that has never chatted is seeded with
// a sample conversation so the chat panel is not empty on first open.
type ChatService struct {
	messages repository.ChatRepository
	now      func() time.Time
	logger   *slog.Logger
}

func NewChatService(messages repository.ChatRepository, logger *slog.Logger) *ChatService {
	return &ChatService{messages: messages, now: time.Now, logger: logger}
}

type PostInput struct {
	TeamID         string
	SenderID       string
	SenderName     string
	SenderInitials string
	Text           string
}

// List returns the team's messages oldest first. If the store cannot be read
// the sample conversation is returned without being saved.
func (s *ChatService) List(ctx context.Context, teamID string) ([]model.ChatMessage, error) {
	teamID = teamOrDefault(teamID)

	msgs, err := s.messages.ListMessages(ctx, teamID, chatHistoryLimit)
	if err != nil {
		s.logger.Warn("chat store unavailable, serving sample conversation",
			slog.String("teamID", teamID),
			slog.String("error", err.Error()),
		)
		return unsavedSample(s.sampleConversation(teamID)), nil
	}
	if len(msgs) > 0 {
		return msgs, nil
	}

	for _, m := range s.sampleConversation(teamID) {
		if err := s.messages.CreateMessage(ctx, &m); err != nil {
			return nil, fmt.Errorf("service/chat: seeding %s: %w", teamID, err)
		}
	}
	s.logger.Info("chat seeded", slog.String("teamID", teamID))

	msgs, err = s.messages.ListMessages(ctx, teamID, chatHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("service/chat: listing %s: %w", teamID, err)
	}
	return msgs, nil
}

// Post stores a message. TeamID and non-blank text are required; missing
// sender fields fall back to an anonymous "You".
func (s *ChatService) Post(ctx context.Context, in PostInput) (*model.ChatMessage, error) {
	teamID := strings.TrimSpace(in.TeamID)
	text := strings.TrimSpace(in.Text)
	if teamID == "" || text == "" {
		return nil, apperror.ValidationFailed("text", "teamId and text are required")
	}
	if len(text) > MaxChatTextLength {
		return nil, apperror.ValidationFailed("text",
			fmt.Sprintf("text must be %d characters or fewer", MaxChatTextLength))
	}

	msg := &model.ChatMessage{
		TeamID:         teamID,
		SenderID:       orDefault(in.SenderID, defaultSenderID),
		SenderName:     orDefault(in.SenderName, defaultSenderName),
		SenderInitials: orDefault(in.SenderInitials, defaultSenderInitials),
		Text:           text,
		Timestamp:      s.now().UTC(),
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("service/chat: posting to %s: %w", teamID, err)
	}
	return msg, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

type sampleLine struct {
	name, initials, text string
	minutesAgo           int
}

var sampleLines = []sampleLine{
	{"Priya Nair", "PN", "Hey team! Just pushed the new auth middleware 🚀", 62},
	{"Rohit Gupta", "RG", "Nice! I'll review it after standup.", 60},
	{"Arjun Sharma", "AS", "The database schema changes are also done. Should we merge both PRs together?", 55},
	{"Priya Nair", "PN", "Let's wait for CI to pass first. Rohit, can you trigger the workflow?", 50},
	{"Rohit Gupta", "RG", "Already on it 👍 Builds green now!", 45},
	{"Sneha Patel", "SP", "I finished the frontend components for the dashboard. Screenshots in the docs.", 40},
	{"Arjun Sharma", "AS", "Looks great Sneha! The design matches the mockups perfectly.", 35},
	{"Priya Nair", "PN", "Team, standup in 5 mins. Zoom link in the calendar invite.", 20},
	{"Rohit Gupta", "RG", "On my way!", 18},
	{"Dev Kapoor", "DK", "Sorry joining late, dealing with a merge conflict 😅", 15},
	{"Arjun Sharma", "AS", "No worries Dev, we'll catch you up. Let's talk about the release plan today.", 10},
	{"Sneha Patel", "SP", "Should we do a demo tomorrow for the client?", 5},
	{"Priya Nair", "PN", "Yes! Let's aim for 11 AM. I'll send the invite.", 2},
}

func (s *ChatService) sampleConversation(teamID string) []model.ChatMessage {
	now := s.now().UTC()
	out := make([]model.ChatMessage, 0, len(sampleLines))
	for _, l := range sampleLines {
		out = append(out, model.ChatMessage{
			TeamID:         teamID,
			SenderID:       "demo-" + strings.ToLower(l.initials),
			SenderName:     l.name,
			SenderInitials: l.initials,
			Text:           l.text,
			Timestamp:      now.Add(-time.Duration(l.minutesAgo) * time.Minute),
		})
	}
	return out
}

func unsavedSample(msgs []model.ChatMessage) []model.ChatMessage {
	for i := range msgs {
		msgs[i].ID = fmt.Sprintf("demo-%d", i)
	}
	return msgs
}
