// Package tasks is the CRUD façade for tasks, listing with the
// fetch-all-then-filter strategy and deriving all counters from list length.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"zentra-api/internal/docstore"
	"zentra-api/internal/models"

	"github.com/goccy/go-json"
)

var ErrNotFound = errors.New("task not found")

type Repository struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) *Repository {
	return &Repository{store: store}
}

func (r *Repository) Create(ctx context.Context, t models.Task) (string, error) {
	now := time.Now().UTC()
	if t.Status == "" {
		t.Status = models.TaskPending
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	id, err := r.store.CreateDocument(ctx, docstore.CollectionTasks, t)
	if err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}
	return id, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*models.Task, error) {
	doc, err := r.store.GetDocument(ctx, docstore.CollectionTasks, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}
	t, err := decode(*doc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ProjectTasks returns a project's tasks, most recent first.
func (r *Repository) ProjectTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	all, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	for _, t := range all {
		if t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	sortByCreatedDesc(tasks)
	return tasks, nil
}

// UserTasks returns tasks created by or assigned to the user, most recent
// first.
func (r *Repository) UserTasks(ctx context.Context, userID string) ([]models.Task, error) {
	all, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	for _, t := range all {
		if t.CreatedBy == userID || t.AssignedTo == userID {
			tasks = append(tasks, t)
		}
	}
	sortByCreatedDesc(tasks)
	return tasks, nil
}

func (r *Repository) PendingTasks(ctx context.Context, userID string) ([]models.Task, error) {
	userTasks, err := r.UserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	var pending []models.Task
	for _, t := range userTasks {
		if t.Status == models.TaskPending {
			pending = append(pending, t)
		}
	}
	return pending, nil
}

// Update merges the patch and stamps updatedAt. It does not validate status
// transitions; the caller gates those through the permission engine.
func (r *Repository) Update(ctx context.Context, id string, patch map[string]any) error {
	patch["updatedAt"] = time.Now().UTC()
	err := r.store.UpdateDocument(ctx, docstore.CollectionTasks, id, patch)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	err := r.store.DeleteDocument(ctx, docstore.CollectionTasks, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (r *Repository) CountPending(ctx context.Context, userID string) (int, error) {
	pending, err := r.PendingTasks(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}

func (r *Repository) CountAll(ctx context.Context, userID string) (int, error) {
	all, err := r.UserTasks(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

// Stats is the per-project task status breakdown shown on project pages.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

func (r *Repository) ProjectStats(ctx context.Context, projectID string) (Stats, error) {
	tasks, err := r.ProjectTasks(ctx, projectID)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.TaskPending:
			stats.Pending++
		case models.TaskInProgress:
			stats.InProgress++
		case models.TaskCompleted:
			stats.Completed++
		case models.TaskCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

func (r *Repository) list(ctx context.Context) ([]models.Task, error) {
	docs, err := r.store.GetDocuments(ctx, docstore.CollectionTasks)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	tasks := make([]models.Task, 0, len(docs))
	for _, doc := range docs {
		t, err := decode(doc)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func sortByCreatedDesc(tasks []models.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
}

func decode(doc docstore.Document) (models.Task, error) {
	var t models.Task
	if err := json.Unmarshal(doc.Data, &t); err != nil {
		return models.Task{}, fmt.Errorf("failed to decode task %s: %v", doc.ID, err)
	}
	t.ID = doc.ID
	return t, nil
}
