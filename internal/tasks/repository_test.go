package tasks

import (
	"context"
	"testing"
	"time"

	"zentra-api/internal/docstore"
	"zentra-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	id, err := repo.Create(ctx, models.Task{
		Title:     "Write docs",
		ProjectID: "p1",
		CreatedBy: "u1",
	})
	require.NoError(t, err)

	task, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.TaskPending, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestProjectTasksNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	older, err := repo.Create(ctx, models.Task{Title: "older", ProjectID: "p1", CreatedBy: "u1"})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	newer, err := repo.Create(ctx, models.Task{Title: "newer", ProjectID: "p1", CreatedBy: "u1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Task{Title: "elsewhere", ProjectID: "p2", CreatedBy: "u1"})
	require.NoError(t, err)

	tasks, err := repo.ProjectTasks(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, newer, tasks[0].ID)
	assert.Equal(t, older, tasks[1].ID)
}

func TestUserTasksMatchesCreatorAndAssignee(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	_, err := repo.Create(ctx, models.Task{Title: "created", ProjectID: "p1", CreatedBy: "u1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Task{Title: "assigned", ProjectID: "p1", CreatedBy: "u2", AssignedTo: "u1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Task{Title: "unrelated", ProjectID: "p1", CreatedBy: "u2", AssignedTo: "u3"})
	require.NoError(t, err)

	tasks, err := repo.UserTasks(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestUpdateAndStatusCounters(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	id, err := repo.Create(ctx, models.Task{Title: "one", ProjectID: "p1", CreatedBy: "u1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Task{Title: "two", ProjectID: "p1", CreatedBy: "u1"})
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, id, map[string]any{"status": models.TaskCompleted}))

	pending, err := repo.CountPending(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	total, err := repo.CountAll(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	task, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.TaskCompleted, task.Status)

	assert.ErrorIs(t, repo.Update(ctx, "missing", map[string]any{"status": models.TaskPending}), ErrNotFound)
}

func TestProjectStats(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	statuses := []models.TaskStatus{
		models.TaskPending, models.TaskPending,
		models.TaskInProgress,
		models.TaskCompleted,
		models.TaskCancelled,
	}
	for i, status := range statuses {
		_, err := repo.Create(ctx, models.Task{
			Title:     "task",
			ProjectID: "p1",
			CreatedBy: "u1",
			Status:    status,
		})
		require.NoError(t, err, "task %d", i)
	}

	stats, err := repo.ProjectStats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 5, Pending: 2, InProgress: 1, Completed: 1, Cancelled: 1}, stats)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	id, err := repo.Create(ctx, models.Task{Title: "gone", ProjectID: "p1", CreatedBy: "u1"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id), ErrNotFound)
}
