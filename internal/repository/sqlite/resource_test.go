package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/collabspace/internal/apperror"
	"github.com/sakif/collabspace/internal/model"
)

func TestResources(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	sneha := createTestUser(t, db, "Sneha Patel", "sneha@college.edu")

	empty, err := db.ListResources(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first := &model.Resource{Title: "Design system", Type: model.ResourceLink, URL: "https://notion.so/ds", Platform: "notion", AddedBy: sneha.ID}
	require.NoError(t, db.CreateResource(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, "Sneha Patel", first.AddedByName)

	second := &model.Resource{Title: "Standup notes", Type: model.ResourceContent, Content: "Ship the demo Friday.", Platform: "notion", AddedBy: sneha.ID}
	require.NoError(t, db.CreateResource(ctx, second))

	all, err := db.ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, "Ship the demo Friday.", all[0].Content)
	assert.Equal(t, first.ID, all[1].ID)
	assert.Equal(t, "https://notion.so/ds", all[1].URL)
	assert.Equal(t, "Sneha Patel", all[1].AddedByName)
}

func TestCreateResource_UnknownAuthor(t *testing.T) {
	db := newTestDB(t)

	err := db.CreateResource(context.Background(), &model.Resource{Title: "x", Type: model.ResourceLink, URL: "https://x.dev", AddedBy: "ghost"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
