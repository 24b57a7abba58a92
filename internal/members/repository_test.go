package members

import (
	"context"
	"testing"
	"time"

	"zentra-api/internal/docstore"
	"zentra-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndRoleOf(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	id, err := repo.Add(ctx, models.Membership{
		ProjectID: "p1",
		UserID:    "u1",
		UserName:  "Ada",
		Role:      models.RoleCollaborator,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	role, err := repo.RoleOf(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCollaborator, role)

	m, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.MembershipActive, m.Status)
	assert.False(t, m.JoinedAt.IsZero())
}

func TestAddUpsertsExistingActiveMembership(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	first, err := repo.Add(ctx, models.Membership{ProjectID: "p1", UserID: "u1", Role: models.RoleCollaborator})
	require.NoError(t, err)

	second, err := repo.Add(ctx, models.Membership{ProjectID: "p1", UserID: "u1", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, first, second, "re-adding the same pair updates in place")

	members, err := repo.ProjectMembers(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, models.RoleAdmin, members[0].Role)
}

func TestRemoveIsSoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	id, err := repo.Add(ctx, models.Membership{ProjectID: "p1", UserID: "u1", Role: models.RoleAdmin})
	require.NoError(t, err)

	require.NoError(t, repo.Remove(ctx, id))

	role, err := repo.RoleOf(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.Empty(t, role)

	m, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.MembershipRemoved, m.Status)
	assert.NotNil(t, m.RemovedAt)

	// A removed member can rejoin; the pair gets a fresh record.
	_, err = repo.Add(ctx, models.Membership{ProjectID: "p1", UserID: "u1", Role: models.RoleCollaborator})
	require.NoError(t, err)
	role, err = repo.RoleOf(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCollaborator, role)
}

func TestProjectMembersOrderedByJoin(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, userID := range []string{"u3", "u1", "u2"} {
		_, err := repo.Add(ctx, models.Membership{
			ProjectID: "p1",
			UserID:    userID,
			Role:      models.RoleCollaborator,
			JoinedAt:  base.Add(time.Duration(3-i) * time.Hour),
		})
		require.NoError(t, err)
	}

	members, err := repo.ProjectMembers(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "u2", members[0].UserID)
	assert.Equal(t, "u1", members[1].UserID)
	assert.Equal(t, "u3", members[2].UserID)
}

func TestUserMembershipsAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	_, err := repo.Add(ctx, models.Membership{ProjectID: "p1", UserID: "u1", Role: models.RoleOwner})
	require.NoError(t, err)
	_, err = repo.Add(ctx, models.Membership{ProjectID: "p2", UserID: "u1", Role: models.RoleCollaborator})
	require.NoError(t, err)
	_, err = repo.Add(ctx, models.Membership{ProjectID: "p1", UserID: "u2", Role: models.RoleAdmin})
	require.NoError(t, err)

	memberships, err := repo.UserMemberships(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, memberships, 2)

	count, err := repo.CountActive(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUpdateRole(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(docstore.NewMemoryStore())

	id, err := repo.Add(ctx, models.Membership{ProjectID: "p1", UserID: "u1", Role: models.RoleCollaborator})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateRole(ctx, id, models.RoleAdmin))

	role, err := repo.RoleOf(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	assert.ErrorIs(t, repo.UpdateRole(ctx, "missing", models.RoleAdmin), ErrNotFound)
}
