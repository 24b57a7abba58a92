package models

import "time"

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationRejected  InvitationStatus = "rejected"
	InvitationCancelled InvitationStatus = "cancelled"
	InvitationExpired   InvitationStatus = "expired"
)

// Invitation is a time-boxed, token-authenticated offer of a membership.
// accepted, rejected, cancelled and expired are terminal states.
type Invitation struct {
	ID             string           `json:"id,omitempty"`
	Token          string           `json:"token"`
	Email          string           `json:"email"`
	ProjectID      string           `json:"projectId"`
	ProjectName    string           `json:"projectName"`
	Role           Role             `json:"role"`
	InvitedBy      string           `json:"invitedBy"`
	InvitedByName  string           `json:"invitedByName"`
	InvitedByEmail string           `json:"invitedByEmail"`
	Status         InvitationStatus `json:"status"`
	AcceptedBy     string           `json:"acceptedBy,omitempty"`
	AcceptedAt     *time.Time       `json:"acceptedAt,omitempty"`
	RejectedAt     *time.Time       `json:"rejectedAt,omitempty"`
	CancelledAt    *time.Time       `json:"cancelledAt,omitempty"`
	ExpiredAt      *time.Time       `json:"expiredAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	ExpiresAt      time.Time        `json:"expiresAt"`
}

// Expired reports whether the invitation is past its expiry at the given time,
// independent of whether the cleanup sweep has flipped its status yet.
func (i Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
