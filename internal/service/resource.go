package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/collabspace/internal/apperror"
	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/repository"
)

const defaultResourcePlatform = "notion"

// ResourceService manages the shared resource library. Only link and inline
// content entries are accepted.
type ResourceService struct {
	resources repository.ResourceRepository
	logger    *slog.Logger
}

func NewResourceService(resources repository.ResourceRepository, logger *slog.Logger) *ResourceService {
	return &ResourceService{resources: resources, logger: logger}
}

type ResourceInput struct {
	Title    string
	Type     model.ResourceType
	URL      string
	Content  string
	Platform string
}

// List returns every resource, newest first.
func (s *ResourceService) List(ctx context.Context) ([]model.Resource, error) {
	resources, err := s.resources.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/resource: listing: %w", err)
	}
	return resources, nil
}

// Create adds a resource on behalf of userID. Type defaults to link and
// Platform to notion.
func (s *ResourceService) Create(ctx context.Context, userID string, in ResourceInput) (*model.Resource, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("valid authentication required")
	}
	r, err := buildResource(in)
	if err != nil {
		return nil, err
	}
	r.AddedBy = userID

	if err := s.resources.CreateResource(ctx, r); err != nil {
		return nil, fmt.Errorf("service/resource: creating %q: %w", r.Title, err)
	}
	s.logger.Info("resource added",
		slog.String("resourceID", r.ID),
		slog.String("type", string(r.Type)),
		slog.String("userID", userID),
	)
	return r, nil
}

func buildResource(in ResourceInput) (*model.Resource, error) {
	r := &model.Resource{
		Title:    strings.TrimSpace(in.Title),
		Type:     in.Type,
		URL:      strings.TrimSpace(in.URL),
		Content:  strings.TrimSpace(in.Content),
		Platform: orDefault(in.Platform, defaultResourcePlatform),
	}
	if r.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if r.Type == "" {
		r.Type = model.ResourceLink
	}

	switch r.Type {
	case model.ResourceLink:
		if r.URL == "" {
			return nil, apperror.ValidationFailed("url", "url is required for link resources")
		}
		r.Content = ""
	case model.ResourceContent:
		if r.Content == "" {
			return nil, apperror.ValidationFailed("content", "content is required for content resources")
		}
	case model.ResourceFile:
		return nil, apperror.ValidationFailed("type", "file uploads are not supported")
	default:
		return nil, apperror.ValidationFailed("type", "type must be link or content")
	}
	return r, nil
}
