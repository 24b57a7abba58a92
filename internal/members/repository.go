// Package members manages project membership records. Lookups use the
// fetch-all-then-filter strategy: the whole collection is read and the
// predicate applied in memory.
package members

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

var ErrNotFound = errors.New("membership not found")

type Repository struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) *Repository {
	return &Repository{store: store}
}

// Add creates an active membership. If an active membership already exists
// for the (userId, projectId) pair it is updated in place instead, so the
// pair never accumulates duplicates.
func (r *Repository) Add(ctx context.Context, m models.Membership) (string, error) {
	existing, err := r.activeMembership(ctx, m.ProjectID, m.UserID)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()

	if existing != nil {
		patch := map[string]any{
			"role":      m.Role,
			"userName":  m.UserName,
			"userEmail": m.UserEmail,
			"updatedAt": now,
		}
		if err := r.store.UpdateDocument(ctx, docstore.CollectionMembers, existing.ID, patch); err != nil {
			return "", fmt.Errorf("failed to update membership: %w", err)
		}
		return existing.ID, nil
	}

	m.Status = models.MembershipActive
	if m.JoinedAt.IsZero() {
		m.JoinedAt = now
	}
	m.CreatedAt = now
	m.UpdatedAt = now

	id, err := r.store.CreateDocument(ctx, docstore.CollectionMembers, m)
	if err != nil {
		return "", fmt.Errorf("failed to add member: %w", err)
	}
	return id, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*models.Membership, error) {
	doc, err := r.store.GetDocument(ctx, docstore.CollectionMembers, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to fetch membership: %w", err)
	}
	m, err := decode(*doc)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ProjectMembers returns the active members of a project, oldest joiner first.
func (r *Repository) ProjectMembers(ctx context.Context, projectID string) ([]models.Membership, error) {
	all, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	var members []models.Membership
	for _, m := range all {
		if m.ProjectID == projectID && m.Status == models.MembershipActive {
			members = append(members, m)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})
	return members, nil
}

// UserMemberships returns the user's active memberships across all projects.
func (r *Repository) UserMemberships(ctx context.Context, userID string) ([]models.Membership, error) {
	all, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	var memberships []models.Membership
	for _, m := range all {
		if m.UserID == userID && m.Status == models.MembershipActive {
			memberships = append(memberships, m)
		}
	}
	return memberships, nil
}

// RoleOf returns the user's role in a project, or "" if the user has no
// active membership. Absence is not an error.
func (r *Repository) RoleOf(ctx context.Context, projectID, userID string) (models.Role, error) {
	m, err := r.activeMembership(ctx, projectID, userID)
	if err != nil {
		return "", err
	}
	if m == nil {
		return "", nil
	}
	return m.Role, nil
}

func (r *Repository) UpdateRole(ctx context.Context, memberID string, role models.Role) error {
	err := r.store.UpdateDocument(ctx, docstore.CollectionMembers, memberID, map[string]any{
		"role":      role,
		"updatedAt": time.Now().UTC(),
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	return nil
}

// Remove soft-deletes a membership by flipping it to removed.
func (r *Repository) Remove(ctx context.Context, memberID string) error {
	now := time.Now().UTC()
	err := r.store.UpdateDocument(ctx, docstore.CollectionMembers, memberID, map[string]any{
		"status":    models.MembershipRemoved,
		"removedAt": now,
		"updatedAt": now,
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

func (r *Repository) CountActive(ctx context.Context, projectID string) (int, error) {
	members, err := r.ProjectMembers(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return len(members), nil
}

func (r *Repository) activeMembership(ctx context.Context, projectID, userID string) (*models.Membership, error) {
	all, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range all {
		if m.ProjectID == projectID && m.UserID == userID && m.Status == models.MembershipActive {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *Repository) list(ctx context.Context) ([]models.Membership, error) {
	docs, err := r.store.GetDocuments(ctx, docstore.CollectionMembers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}

	memberships := make([]models.Membership, 0, len(docs))
	for _, doc := range docs {
		m, err := decode(doc)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, nil
}

func decode(doc docstore.Document) (models.Membership, error) {
	var m models.Membership
	if err := json.Unmarshal(doc.Data, &m); err != nil {
		return models.Membership{}, fmt.Errorf("failed to decode membership %s: %v", doc.ID, err)
	}
	m.ID = doc.ID
	return m, nil
}
