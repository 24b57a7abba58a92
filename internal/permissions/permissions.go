// Package permissions is the single source of truth for "can user U perform
// action A on project P". Roles are project-scoped capability tiers; the
// role→permission table is a product invariant, fixed at compile time.
package permissions

import "zentra-api/internal/models"

type Permission string

const (
	ViewAllTasks      Permission = "view_all_tasks"
	ViewAssignedTasks Permission = "view_assigned_tasks"
	CreateTasks       Permission = "create_tasks"
	EditTasks         Permission = "edit_tasks"
	DeleteTasks       Permission = "delete_tasks"
	CommentTasks      Permission = "comment_tasks"
	ChangeStatus      Permission = "change_status"
	MarkCompleted     Permission = "mark_completed"
	ManageMembers     Permission = "manage_members"
	DeleteProject     Permission = "delete_project"
)

var rolePermissions = map[models.Role]map[Permission]bool{
	models.RoleOwner: {
		ViewAllTasks:  true,
		CreateTasks:   true,
		EditTasks:     true,
		DeleteTasks:   true,
		CommentTasks:  true,
		ChangeStatus:  true,
		MarkCompleted: true,
		ManageMembers: true,
		DeleteProject: true,
	},
	models.RoleAdmin: {
		ViewAllTasks:  true,
		CreateTasks:   true,
		EditTasks:     true,
		CommentTasks:  true,
		ChangeStatus:  true,
		MarkCompleted: true,
	},
	models.RoleCollaborator: {
		ViewAssignedTasks: true,
		CommentTasks:      true,
	},
}

// Granted reports whether the role's static grant set contains the permission.
func Granted(role models.Role, permission Permission) bool {
	return rolePermissions[role][permission]
}

// Permissions returns the grant set for a role.
func Permissions(role models.Role) []Permission {
	set := rolePermissions[role]
	permissions := make([]Permission, 0, len(set))
	for _, p := range []Permission{
		ViewAllTasks, ViewAssignedTasks, CreateTasks, EditTasks, DeleteTasks,
		CommentTasks, ChangeStatus, MarkCompleted, ManageMembers, DeleteProject,
	} {
		if set[p] {
			permissions = append(permissions, p)
		}
	}
	return permissions
}

// StatusAllowed reports whether a role may move a task into the given status.
// Owners and admins may set any status; collaborators may only toggle between
// pending and in_progress.
func StatusAllowed(role models.Role, status models.TaskStatus) bool {
	switch role {
	case models.RoleOwner, models.RoleAdmin:
		return true
	case models.RoleCollaborator:
		return status == models.TaskPending || status == models.TaskInProgress
	default:
		return false
	}
}
