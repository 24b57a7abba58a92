// Package projects is the CRUD façade for projects, including the owner
// membership side effect on create and the cascade delete. Listing uses
// fetch-all-then-filter: the whole collection is read and filtered in memory
// because the store performs no compound filter+sort queries.
package projects

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"zentra-api/internal/docstore"
	"zentra-api/internal/members"
	"zentra-api/internal/models"

	"github.com/goccy/go-json"
)

var ErrNotFound = errors.New("project not found")

type Repository struct {
	store   docstore.Store
	members *members.Repository
}

func NewRepository(store docstore.Store, members *members.Repository) *Repository {
	return &Repository{store: store, members: members}
}

// Create writes the project and then adds the creator as owner. The two
// writes are sequential with no rollback: if the membership write fails the
// project already exists and the error is surfaced to the caller.
func (r *Repository) Create(ctx context.Context, p models.Project) (string, error) {
	now := time.Now().UTC()
	if p.Status == "" {
		p.Status = models.ProjectActive
	}
	if p.Priority == "" {
		p.Priority = models.PriorityMedium
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	id, err := r.store.CreateDocument(ctx, docstore.CollectionProjects, p)
	if err != nil {
		return "", fmt.Errorf("failed to create project: %w", err)
	}

	if p.CreatedBy != "" {
		_, err = r.members.Add(ctx, models.Membership{
			ProjectID: id,
			UserID:    p.CreatedBy,
			UserName:  p.CreatedByName,
			Role:      models.RoleOwner,
			JoinedAt:  now,
		})
		if err != nil {
			return id, fmt.Errorf("project %s created but owner membership failed: %w", id, err)
		}
	}

	return id, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*models.Project, error) {
	doc, err := r.store.GetDocument(ctx, docstore.CollectionProjects, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}
	p, err := decode(*doc)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UserProjects returns every project the user belongs to, most recently
// updated first. Projects created by the user are included even if the owner
// membership write failed.
func (r *Repository) UserProjects(ctx context.Context, userID string) ([]models.Project, error) {
	all, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	memberships, err := r.members.UserMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}
	memberOf := make(map[string]bool, len(memberships))
	for _, m := range memberships {
		memberOf[m.ProjectID] = true
	}

	var projects []models.Project
	for _, p := range all {
		if p.CreatedBy == userID || memberOf[p.ID] {
			projects = append(projects, p)
		}
	}
	sortByUpdatedDesc(projects)
	return projects, nil
}

// ActiveProjects returns active projects, optionally restricted to a user.
func (r *Repository) ActiveProjects(ctx context.Context, userID string) ([]models.Project, error) {
	all, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	var projects []models.Project
	for _, p := range all {
		if p.Status != models.ProjectActive {
			continue
		}
		if userID != "" && p.CreatedBy != userID {
			continue
		}
		projects = append(projects, p)
	}
	sortByUpdatedDesc(projects)
	return projects, nil
}

func (r *Repository) Update(ctx context.Context, id string, patch map[string]any) error {
	patch["updatedAt"] = time.Now().UTC()
	err := r.store.UpdateDocument(ctx, docstore.CollectionProjects, id, patch)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// Delete removes the project and everything referencing it: tasks, membership
// records and invitations, then the project itself. Deletes are sequential
// with no transaction; the first failure aborts and may leave partial state.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.deleteWhere(ctx, docstore.CollectionTasks, "projectId", id); err != nil {
		return fmt.Errorf("failed to delete project tasks: %w", err)
	}
	if err := r.deleteWhere(ctx, docstore.CollectionMembers, "projectId", id); err != nil {
		return fmt.Errorf("failed to delete project members: %w", err)
	}
	if err := r.deleteWhere(ctx, docstore.CollectionInvitations, "projectId", id); err != nil {
		return fmt.Errorf("failed to delete project invitations: %w", err)
	}

	err := r.store.DeleteDocument(ctx, docstore.CollectionProjects, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// CountActive counts the user's active projects. Derived from the full list,
// not a separate store query.
func (r *Repository) CountActive(ctx context.Context, userID string) (int, error) {
	projects, err := r.ActiveProjects(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(projects), nil
}

// CountMembers counts distinct active members across the user's projects.
func (r *Repository) CountMembers(ctx context.Context, userID string) (int, error) {
	projects, err := r.UserProjects(ctx, userID)
	if err != nil {
		return 0, err
	}

	unique := make(map[string]bool)
	for _, p := range projects {
		projectMembers, err := r.members.ProjectMembers(ctx, p.ID)
		if err != nil {
			log.Printf("failed to count members of project %s: %v", p.ID, err)
			continue
		}
		for _, m := range projectMembers {
			unique[m.UserID] = true
		}
	}
	return len(unique), nil
}

func (r *Repository) deleteWhere(ctx context.Context, collection, field, value string) error {
	docs, err := r.store.GetDocuments(ctx, collection)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		var body map[string]any
		if err := json.Unmarshal(doc.Data, &body); err != nil {
			continue
		}
		if body[field] != value {
			continue
		}
		if err := r.store.DeleteDocument(ctx, collection, doc.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) list(ctx context.Context) ([]models.Project, error) {
	docs, err := r.store.GetDocuments(ctx, docstore.CollectionProjects)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	projects := make([]models.Project, 0, len(docs))
	for _, doc := range docs {
		p, err := decode(doc)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func sortByUpdatedDesc(projects []models.Project) {
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})
}

func decode(doc docstore.Document) (models.Project, error) {
	var p models.Project
	if err := json.Unmarshal(doc.Data, &p); err != nil {
		return models.Project{}, fmt.Errorf("failed to decode project %s: %v", doc.ID, err)
	}
	p.ID = doc.ID
	return p, nil
}
