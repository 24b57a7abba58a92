// Package comments is the CRUD façade for task comments. Task comment lists
// sort ascending so they read as a conversation.
package comments

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"zentra-api/internal/docstore"
	"zentra-api/internal/models"

	"github.com/goccy/go-json"
)

var ErrNotFound = errors.New("comment not found")

type Repository struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) *Repository {
	return &Repository{store: store}
}

func (r *Repository) Add(ctx context.Context, c models.Comment) (*models.Comment, error) {
	now := time.Now().UTC()
	c.Text = strings.TrimSpace(c.Text)
	c.Edited = false
	c.CreatedAt = now
	c.UpdatedAt = now

	id, err := r.store.CreateDocument(ctx, docstore.CollectionComments, c)
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	c.ID = id
	return &c, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*models.Comment, error) {
	doc, err := r.store.GetDocument(ctx, docstore.CollectionComments, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to fetch comment: %w", err)
	}
	c, err := decode(*doc)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update replaces the text and marks the comment edited.
func (r *Repository) Update(ctx context.Context, id, text string) error {
	err := r.store.UpdateDocument(ctx, docstore.CollectionComments, id, map[string]any{
		"text":      strings.TrimSpace(text),
		"edited":    true,
		"updatedAt": time.Now().UTC(),
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	err := r.store.DeleteDocument(ctx, docstore.CollectionComments, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// TaskComments returns a task's comments oldest first.
func (r *Repository) TaskComments(ctx context.Context, taskID string) ([]models.Comment, error) {
	all, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	var comments []models.Comment
	for _, c := range all {
		if c.TaskID == taskID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

// ProjectComments returns a project's comments newest first.
func (r *Repository) ProjectComments(ctx context.Context, projectID string) ([]models.Comment, error) {
	all, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	var comments []models.Comment
	for _, c := range all {
		if c.ProjectID == projectID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *Repository) CountTask(ctx context.Context, taskID string) (int, error) {
	comments, err := r.TaskComments(ctx, taskID)
	if err != nil {
		return 0, err
	}
	return len(comments), nil
}

func (r *Repository) CountProject(ctx context.Context, projectID string) (int, error) {
	comments, err := r.ProjectComments(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return len(comments), nil
}

// CanManage reports whether the user may edit or delete the comment. Only
// the author may.
func (r *Repository) CanManage(ctx context.Context, commentID, userID string) (bool, error) {
	c, err := r.Get(ctx, commentID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return c.UserID == userID, nil
}

func (r *Repository) list(ctx context.Context) ([]models.Comment, error) {
	docs, err := r.store.GetDocuments(ctx, docstore.CollectionComments)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}

	comments := make([]models.Comment, 0, len(docs))
	for _, doc := range docs {
		c, err := decode(doc)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}

func decode(doc docstore.Document) (models.Comment, error) {
	var c models.Comment
	if err := json.Unmarshal(doc.Data, &c); err != nil {
		return models.Comment{}, fmt.Errorf("failed to decode comment %s: %v", doc.ID, err)
	}
	c.ID = doc.ID
	return c, nil
}
