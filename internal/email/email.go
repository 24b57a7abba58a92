// Package email is the fire-and-forget notification sink for invitation
// emails. A failed send never rolls back the invitation it announces.
package email

import (
	"context"
	"log"

	"zentra-api/internal/models"
)

type InviteEmail struct {
	Email       string
	ProjectName string
	InviterName string
	Role        models.Role
	InviteLink  string
}

type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
}

type Sink interface {
	SendInviteEmail(ctx context.Context, invite InviteEmail) (Result, error)
}

// LogSink writes the invite to the log instead of sending it. Default in
// development.
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) SendInviteEmail(_ context.Context, invite InviteEmail) (Result, error) {
	log.Printf("invite email (not sent): to=%s project=%q inviter=%q role=%s link=%s",
		invite.Email, invite.ProjectName, invite.InviterName, invite.Role, invite.InviteLink)
	return Result{Success: true, MessageID: "logged"}, nil
}
