package permissions

import (
	"context"
	"log"

	"zentra-api/internal/models"
)

// MembershipSource resolves a user's role in a project. Satisfied by
// members.Repository.
type MembershipSource interface {
	RoleOf(ctx context.Context, projectID, userID string) (models.Role, error)
}

type Engine struct {
	members MembershipSource
}

func NewEngine(members MembershipSource) *Engine {
	return &Engine{members: members}
}

// GetRole returns the user's role in the project, or "" if the user has no
// active membership.
func (e *Engine) GetRole(ctx context.Context, projectID, userID string) (models.Role, error) {
	return e.members.RoleOf(ctx, projectID, userID)
}

// HasPermission resolves the role and checks it against the permission table.
// Non-members get false, never an error. Store failures are fail-closed:
// logged and reported as a denial.
func (e *Engine) HasPermission(ctx context.Context, projectID, userID string, permission Permission) bool {
	role, err := e.members.RoleOf(ctx, projectID, userID)
	if err != nil {
		log.Printf("permission check failed for user %s on project %s: %v", userID, projectID, err)
		return false
	}
	if role == "" {
		return false
	}
	return Granted(role, permission)
}

// CanSetTaskStatus checks the role-specific status transition rule.
func (e *Engine) CanSetTaskStatus(ctx context.Context, projectID, userID string, status models.TaskStatus) bool {
	role, err := e.members.RoleOf(ctx, projectID, userID)
	if err != nil {
		log.Printf("status permission check failed for user %s on project %s: %v", userID, projectID, err)
		return false
	}
	return StatusAllowed(role, status)
}

// Capabilities is the capability set the presentation layer queries to decide
// which controls to render.
type Capabilities struct {
	Role             models.Role `json:"role,omitempty"`
	CanViewAllTasks  bool        `json:"canViewAllTasks"`
	CanCreateTasks   bool        `json:"canCreateTasks"`
	CanEditTasks     bool        `json:"canEditTasks"`
	CanDeleteTasks   bool        `json:"canDeleteTasks"`
	CanComment       bool        `json:"canComment"`
	CanChangeStatus  bool        `json:"canChangeStatus"`
	CanMarkCompleted bool        `json:"canMarkCompleted"`
	CanManageMembers bool        `json:"canManageMembers"`
	CanDeleteProject bool        `json:"canDeleteProject"`
	CanEditProject   bool        `json:"canEditProject"`
}

func (e *Engine) Capabilities(ctx context.Context, projectID, userID string) Capabilities {
	role, err := e.members.RoleOf(ctx, projectID, userID)
	if err != nil {
		log.Printf("capability lookup failed for user %s on project %s: %v", userID, projectID, err)
		return Capabilities{}
	}
	if role == "" {
		return Capabilities{}
	}
	return Capabilities{
		Role:             role,
		CanViewAllTasks:  Granted(role, ViewAllTasks),
		CanCreateTasks:   Granted(role, CreateTasks),
		CanEditTasks:     Granted(role, EditTasks),
		CanDeleteTasks:   Granted(role, DeleteTasks),
		CanComment:       Granted(role, CommentTasks),
		CanChangeStatus:  Granted(role, ChangeStatus),
		CanMarkCompleted: Granted(role, MarkCompleted),
		CanManageMembers: Granted(role, ManageMembers),
		CanDeleteProject: Granted(role, DeleteProject),
		CanEditProject:   role == models.RoleOwner || role == models.RoleAdmin,
	}
}
