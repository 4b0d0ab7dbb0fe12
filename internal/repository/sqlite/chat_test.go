package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/collabspace/internal/model"
)

func TestChatMessages(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)

	for i, text := range []string{"one", "two", "three"} {
		m := &model.ChatMessage{TeamID: "demo", SenderName: "Dev Kapoor", SenderInitials: "DK", Text: text, Timestamp: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, db.CreateMessage(ctx, m))
		assert.NotEmpty(t, m.ID)
	}
	require.NoError(t, db.CreateMessage(ctx, &model.ChatMessage{TeamID: "other", SenderName: "x", Text: "elsewhere", Timestamp: base}))

	all, err := db.ListMessages(ctx, "demo", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "one", all[0].Text)
	assert.Equal(t, "three", all[2].Text)

	latest, err := db.ListMessages(ctx, "demo", 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "two", latest[0].Text)
	assert.Equal(t, "three", latest[1].Text)

	none, err := db.ListMessages(ctx, "empty", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
