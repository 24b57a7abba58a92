package models

import "time"

type Role string

const (
	RoleOwner        Role = "owner"
	RoleAdmin        Role = "admin"
	RoleCollaborator Role = "collaborator"
)

type MembershipStatus string

const (
	MembershipActive  MembershipStatus = "active"
	MembershipRemoved MembershipStatus = "removed"
)

// Membership binds a user to a project with a role. At most one active
// membership may exist per (userId, projectId) pair.
type Membership struct {
	ID        string           `json:"id,omitempty"`
	ProjectID string           `json:"projectId"`
	UserID    string           `json:"userId"`
	UserName  string           `json:"userName"`
	UserEmail string           `json:"userEmail"`
	Role      Role             `json:"role"`
	Status    MembershipStatus `json:"status"`
	InvitedBy string           `json:"invitedBy,omitempty"`
	JoinedAt  time.Time        `json:"joinedAt"`
	RemovedAt *time.Time       `json:"removedAt,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
