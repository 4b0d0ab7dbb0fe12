package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/collabspace/internal/apperror"
	"github.com/sakif/collabspace/internal/model"
)

func TestResourceCreate_Defaults(t *testing.T) {
	repo := &fakeResourceRepo{}
	svc := NewResourceService(repo, quietLogger())

	r, err := svc.Create(context.Background(), "user-1", ResourceInput{Title: "  API docs ", URL: "https://docs.example.dev"})
	require.NoError(t, err)
	assert.Equal(t, "API docs", r.Title)
	assert.Equal(t, model.ResourceLink, r.Type)
	assert.Equal(t, "notion", r.Platform)
	assert.Equal(t, "user-1", r.AddedBy)
	assert.Equal(t, "res-1", r.ID)

	r, err = svc.Create(context.Background(), "user-1", ResourceInput{Title: "Retro", Type: model.ResourceContent, Content: "Keep PRs small.", Platform: "confluence"})
	require.NoError(t, err)
	assert.Equal(t, "confluence", r.Platform)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Retro", list[0].Title)
}

func TestResourceCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    ResourceInput
		field string
	}{
		{"missing title", ResourceInput{URL: "https://x.dev"}, "title"},
		{"link without url", ResourceInput{Title: "x", Type: model.ResourceLink}, "url"},
		{"content without content", ResourceInput{Title: "x", Type: model.ResourceContent, Content: "  "}, "content"},
		{"file upload", ResourceInput{Title: "slides.pdf", Type: model.ResourceFile}, "type"},
		{"unknown type", ResourceInput{Title: "x", Type: "video", URL: "https://x.dev"}, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeResourceRepo{}
			svc := NewResourceService(repo, quietLogger())

			_, err := svc.Create(context.Background(), "user-1", tt.in)
			require.ErrorIs(t, err, apperror.ErrValidation)
			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.field, appErr.Field)
			assert.Empty(t, repo.resources)
		})
	}
}

func TestResourceCreate_RequiresUser(t *testing.T) {
	svc := NewResourceService(&fakeResourceRepo{}, quietLogger())

	_, err := svc.Create(context.Background(), "", ResourceInput{Title: "x", URL: "https://x.dev"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestResourceList_StoreError(t *testing.T) {
	svc := NewResourceService(&fakeResourceRepo{err: errors.New("disk full")}, quietLogger())

	_, err := svc.List(context.Background())
	assert.ErrorContains(t, err, "disk full")
}
