package permissions

import (
	"testing"

	"zentra-api/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRoleGrants(t *testing.T) {
	tests := []struct {
		role       models.Role
		permission Permission
		want       bool
	}{
		{models.RoleOwner, ViewAllTasks, true},
		{models.RoleOwner, ManageMembers, true},
		{models.RoleOwner, DeleteProject, true},
		{models.RoleOwner, DeleteTasks, true},

		{models.RoleAdmin, ViewAllTasks, true},
		{models.RoleAdmin, CreateTasks, true},
		{models.RoleAdmin, EditTasks, true},
		{models.RoleAdmin, MarkCompleted, true},
		{models.RoleAdmin, DeleteTasks, false},
		{models.RoleAdmin, ManageMembers, false},
		{models.RoleAdmin, DeleteProject, false},

		{models.RoleCollaborator, ViewAssignedTasks, true},
		{models.RoleCollaborator, CommentTasks, true},
		{models.RoleCollaborator, ViewAllTasks, false},
		{models.RoleCollaborator, CreateTasks, false},
		{models.RoleCollaborator, EditTasks, false},
		{models.RoleCollaborator, MarkCompleted, false},
		{models.RoleCollaborator, ManageMembers, false},

		{models.Role(""), CommentTasks, false},
		{models.Role("bogus"), ViewAllTasks, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Granted(tt.role, tt.permission),
			"role %q permission %q", tt.role, tt.permission)
	}
}

func TestPermissionsSetSizes(t *testing.T) {
	assert.Len(t, Permissions(models.RoleOwner), 9)
	assert.Len(t, Permissions(models.RoleAdmin), 6)
	assert.Len(t, Permissions(models.RoleCollaborator), 2)
	assert.Empty(t, Permissions(models.Role("")))
}

func TestStatusAllowed(t *testing.T) {
	all := []models.TaskStatus{
		models.TaskPending, models.TaskInProgress, models.TaskCompleted, models.TaskCancelled,
	}
	for _, status := range all {
		assert.True(t, StatusAllowed(models.RoleOwner, status))
		assert.True(t, StatusAllowed(models.RoleAdmin, status))
		assert.False(t, StatusAllowed(models.Role(""), status))
	}

	assert.True(t, StatusAllowed(models.RoleCollaborator, models.TaskPending))
	assert.True(t, StatusAllowed(models.RoleCollaborator, models.TaskInProgress))
	assert.False(t, StatusAllowed(models.RoleCollaborator, models.TaskCompleted))
	assert.False(t, StatusAllowed(models.RoleCollaborator, models.TaskCancelled))
}
