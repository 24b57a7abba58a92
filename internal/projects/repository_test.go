package projects

import (
	"context"
	"testing"
	"time"

	"zentra-api/internal/docstore"
	"zentra-api/internal/members"
	"zentra-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo() (*Repository, *members.Repository, docstore.Store) {
	store := docstore.NewMemoryStore()
	memberRepo := members.NewRepository(store)
	return NewRepository(store, memberRepo), memberRepo, store
}

func TestCreateAppliesDefaultsAndOwnerMembership(t *testing.T) {
	ctx := context.Background()
	repo, memberRepo, _ := newRepo()

	id, err := repo.Create(ctx, models.Project{
		Name:          "Website redesign",
		CreatedBy:     "u1",
		CreatedByName: "Ada",
	})
	require.NoError(t, err)

	p, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectActive, p.Status)
	assert.Equal(t, models.PriorityMedium, p.Priority)
	assert.False(t, p.CreatedAt.IsZero())

	role, err := memberRepo.RoleOf(ctx, id, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, role)
}

func TestUserProjectsIncludesMemberships(t *testing.T) {
	ctx := context.Background()
	repo, memberRepo, _ := newRepo()

	owned, err := repo.Create(ctx, models.Project{Name: "Owned", CreatedBy: "u1"})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	joined, err := repo.Create(ctx, models.Project{Name: "Joined", CreatedBy: "u2"})
	require.NoError(t, err)
	_, err = memberRepo.Add(ctx, models.Membership{ProjectID: joined, UserID: "u1", Role: models.RoleCollaborator})
	require.NoError(t, err)

	_, err = repo.Create(ctx, models.Project{Name: "Unrelated", CreatedBy: "u3"})
	require.NoError(t, err)

	list, err := repo.UserProjects(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, joined, list[0].ID, "most recently updated project first")
	assert.Equal(t, owned, list[1].ID)
}

func TestUpdateBumpsUpdatedAtAndReorders(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newRepo()

	first, err := repo.Create(ctx, models.Project{Name: "First", CreatedBy: "u1"})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := repo.Create(ctx, models.Project{Name: "Second", CreatedBy: "u1"})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	require.NoError(t, repo.Update(ctx, first, map[string]any{"name": "First, renamed"}))

	list, err := repo.UserProjects(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0].ID)
	assert.Equal(t, second, list[1].ID)
	assert.Equal(t, "First, renamed", list[0].Name)
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	repo, memberRepo, store := newRepo()

	id, err := repo.Create(ctx, models.Project{Name: "Doomed", CreatedBy: "u1"})
	require.NoError(t, err)
	keep, err := repo.Create(ctx, models.Project{Name: "Kept", CreatedBy: "u1"})
	require.NoError(t, err)

	_, err = store.CreateDocument(ctx, docstore.CollectionTasks, map[string]any{"projectId": id, "title": "t"})
	require.NoError(t, err)
	_, err = store.CreateDocument(ctx, docstore.CollectionTasks, map[string]any{"projectId": keep, "title": "t"})
	require.NoError(t, err)
	_, err = store.CreateDocument(ctx, docstore.CollectionInvitations, map[string]any{"projectId": id, "email": "x@example.com"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	tasks, err := store.GetDocuments(ctx, docstore.CollectionTasks)
	require.NoError(t, err)
	assert.Len(t, tasks, 1, "only the other project's task survives")

	invites, err := store.GetDocuments(ctx, docstore.CollectionInvitations)
	require.NoError(t, err)
	assert.Empty(t, invites)

	role, err := memberRepo.RoleOf(ctx, id, "u1")
	require.NoError(t, err)
	assert.Empty(t, role, "membership records are gone")

	assert.ErrorIs(t, repo.Delete(ctx, id), ErrNotFound)
}

func TestCountActive(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newRepo()

	_, err := repo.Create(ctx, models.Project{Name: "Active", CreatedBy: "u1"})
	require.NoError(t, err)
	paused, err := repo.Create(ctx, models.Project{Name: "Paused", CreatedBy: "u1"})
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, paused, map[string]any{"status": models.ProjectPaused}))
	_, err = repo.Create(ctx, models.Project{Name: "Other user", CreatedBy: "u2"})
	require.NoError(t, err)

	count, err := repo.CountActive(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCountMembersDeduplicatesAcrossProjects(t *testing.T) {
	ctx := context.Background()
	repo, memberRepo, _ := newRepo()

	p1, err := repo.Create(ctx, models.Project{Name: "One", CreatedBy: "u1"})
	require.NoError(t, err)
	p2, err := repo.Create(ctx, models.Project{Name: "Two", CreatedBy: "u1"})
	require.NoError(t, err)

	// u2 is a member of both projects, u3 of one.
	for _, projectID := range []string{p1, p2} {
		_, err = memberRepo.Add(ctx, models.Membership{ProjectID: projectID, UserID: "u2", Role: models.RoleCollaborator})
		require.NoError(t, err)
	}
	_, err = memberRepo.Add(ctx, models.Membership{ProjectID: p1, UserID: "u3", Role: models.RoleAdmin})
	require.NoError(t, err)

	count, err := repo.CountMembers(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, count, "u1, u2 and u3 counted once each")
}
