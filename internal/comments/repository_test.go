package comments

import (
	"context"
	"testing"
	"time"

	"zentra-api/internal/docstore"
	"zentra-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTrimsText(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	c, err := repo.Add(ctx, models.Comment{
		TaskID:    "t1",
		ProjectID: "p1",
		UserID:    "u1",
		Text:      "  looks good  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "looks good", c.Text)
	assert.False(t, c.Edited)
	assert.NotEmpty(t, c.ID)
}

func TestTaskCommentsReadAsConversation(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	first, err := repo.Add(ctx, models.Comment{TaskID: "t1", ProjectID: "p1", UserID: "u1", Text: "first"})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := repo.Add(ctx, models.Comment{TaskID: "t1", ProjectID: "p1", UserID: "u2", Text: "second"})
	require.NoError(t, err)
	_, err = repo.Add(ctx, models.Comment{TaskID: "t2", ProjectID: "p1", UserID: "u1", Text: "elsewhere"})
	require.NoError(t, err)

	list, err := repo.TaskComments(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID, "oldest first")
	assert.Equal(t, second.ID, list[1].ID)

	// Project-level listing is newest first.
	projectList, err := repo.ProjectComments(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, projectList, 3)
	assert.Equal(t, first.ID, projectList[2].ID)
}

func TestUpdateMarksEdited(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	c, err := repo.Add(ctx, models.Comment{TaskID: "t1", ProjectID: "p1", UserID: "u1", Text: "draft"})
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, c.ID, " final "))

	updated, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Text)
	assert.True(t, updated.Edited)

	assert.ErrorIs(t, repo.Update(ctx, "missing", "x"), ErrNotFound)
}

func TestCanManageIsAuthorOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	c, err := repo.Add(ctx, models.Comment{TaskID: "t1", ProjectID: "p1", UserID: "u1", Text: "mine"})
	require.NoError(t, err)

	ok, err := repo.CanManage(ctx, c.ID, "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.CanManage(ctx, c.ID, "u2")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.CanManage(ctx, "missing", "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCounts(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	for i := 0; i < 3; i++ {
		_, err := repo.Add(ctx, models.Comment{TaskID: "t1", ProjectID: "p1", UserID: "u1", Text: "hi"})
		require.NoError(t, err)
	}
	_, err := repo.Add(ctx, models.Comment{TaskID: "t2", ProjectID: "p1", UserID: "u1", Text: "hi"})
	require.NoError(t, err)

	n, err := repo.CountTask(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = repo.CountProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
