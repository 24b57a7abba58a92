// Package invitations implements the invitation lifecycle:
//
//	pending → accepted | rejected | cancelled | expired
//
// All four end states are terminal. Tokens are unguessable uuids, invitations
// expire seven days after creation, and expiry is enforced at accept time
// because the cleanup sweep runs only on demand.
package invitations

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"zentra-api/internal/docstore"
	"zentra-api/internal/members"
	"zentra-api/internal/models"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const validity = 7 * 24 * time.Hour

var (
	ErrNotFound      = errors.New("invitation not found")
	ErrDuplicate     = errors.New("email already invited to this project")
	ErrNotPending    = errors.New("invitation is no longer pending")
	ErrExpired       = errors.New("invitation has expired")
	ErrEmailMismatch = errors.New("invitation was issued for a different email")
	ErrSelfInvite    = errors.New("cannot invite yourself")
	ErrInvalidRole   = errors.New("invited role must be admin or collaborator")
)

type Manager struct {
	store   docstore.Store
	members *members.Repository
}

func NewManager(store docstore.Store, members *members.Repository) *Manager {
	return &Manager{store: store, members: members}
}

type CreateParams struct {
	Email          string
	ProjectID      string
	ProjectName    string
	Role           models.Role
	InvitedBy      string
	InvitedByName  string
	InvitedByEmail string
}

// Create issues a pending invitation with a fresh token. The duplicate guard
// is a read-then-write check, not an atomic constraint: two racing calls can
// both pass it.
func (m *Manager) Create(ctx context.Context, params CreateParams) (*models.Invitation, error) {
	email := NormalizeEmail(params.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid invitee email %q", params.Email)
	}
	if email == NormalizeEmail(params.InvitedByEmail) {
		return nil, ErrSelfInvite
	}
	if params.Role != models.RoleAdmin && params.Role != models.RoleCollaborator {
		return nil, ErrInvalidRole
	}

	invited, err := m.emailAlreadyInvited(ctx, email, params.ProjectID)
	if err != nil {
		return nil, err
	}
	if invited {
		return nil, ErrDuplicate
	}

	now := time.Now().UTC()
	inv := models.Invitation{
		Token:          uuid.NewString(),
		Email:          email,
		ProjectID:      params.ProjectID,
		ProjectName:    params.ProjectName,
		Role:           params.Role,
		InvitedBy:      params.InvitedBy,
		InvitedByName:  params.InvitedByName,
		InvitedByEmail: NormalizeEmail(params.InvitedByEmail),
		Status:         models.InvitationPending,
		CreatedAt:      now,
		ExpiresAt:      now.Add(validity),
	}

	id, err := m.store.CreateDocument(ctx, docstore.CollectionInvitations, inv)
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}
	inv.ID = id
	return &inv, nil
}

// GetByToken returns the pending invitation carrying the token, or nil if
// none exists. It does not check expiry: a past-expiry invitation that the
// sweep has not yet flipped is still returned as pending, and callers must
// check Expired themselves before honoring it.
func (m *Manager) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	all, err := m.list(ctx)
	if err != nil {
		return nil, err
	}
	for _, inv := range all {
		if inv.Token == token && inv.Status == models.InvitationPending {
			return &inv, nil
		}
	}
	return nil, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*models.Invitation, error) {
	doc, err := m.store.GetDocument(ctx, docstore.CollectionInvitations, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to fetch invitation: %w", err)
	}
	inv, err := decode(*doc)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// ProjectInvitations returns a project's invitations, newest first.
func (m *Manager) ProjectInvitations(ctx context.Context, projectID string) ([]models.Invitation, error) {
	all, err := m.list(ctx)
	if err != nil {
		return nil, err
	}

	var invitations []models.Invitation
	for _, inv := range all {
		if inv.ProjectID == projectID {
			invitations = append(invitations, inv)
		}
	}
	sort.Slice(invitations, func(i, j int) bool {
		return invitations[i].CreatedAt.After(invitations[j].CreatedAt)
	})
	return invitations, nil
}

type AcceptResult struct {
	ProjectID   string      `json:"projectId"`
	ProjectName string      `json:"projectName"`
	Role        models.Role `json:"role"`
}

// Accept transitions the invitation to accepted and creates the membership.
// The invitation is re-read and must still be pending, not past expiry, and
// issued for the accepting user's email. The two writes are not atomic: if
// the membership write fails the invitation is left accepted and the
// inconsistency is logged for operators.
func (m *Manager) Accept(ctx context.Context, invitationID, userID, userName, userEmail string) (*AcceptResult, error) {
	inv, err := m.Get(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if inv.Status != models.InvitationPending {
		return nil, ErrNotPending
	}
	if inv.Expired(time.Now().UTC()) {
		return nil, ErrExpired
	}
	if inv.Email != NormalizeEmail(userEmail) {
		return nil, ErrEmailMismatch
	}

	now := time.Now().UTC()
	err = m.store.UpdateDocument(ctx, docstore.CollectionInvitations, invitationID, map[string]any{
		"status":     models.InvitationAccepted,
		"acceptedBy": userID,
		"acceptedAt": now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to accept invitation: %w", err)
	}

	_, err = m.members.Add(ctx, models.Membership{
		ProjectID: inv.ProjectID,
		UserID:    userID,
		UserName:  userName,
		UserEmail: NormalizeEmail(userEmail),
		Role:      inv.Role,
		InvitedBy: inv.InvitedBy,
		JoinedAt:  now,
	})
	if err != nil {
		log.Printf("invitation %s accepted but membership creation failed: %v", invitationID, err)
		return nil, fmt.Errorf("invitation accepted but membership creation failed: %w", err)
	}

	return &AcceptResult{
		ProjectID:   inv.ProjectID,
		ProjectName: inv.ProjectName,
		Role:        inv.Role,
	}, nil
}

// Reject marks a pending invitation rejected.
func (m *Manager) Reject(ctx context.Context, invitationID string) error {
	return m.transition(ctx, invitationID, models.InvitationRejected, "rejectedAt")
}

// Cancel marks a pending invitation cancelled. Used by project owners to
// revoke an invitation before it is consumed.
func (m *Manager) Cancel(ctx context.Context, invitationID string) error {
	return m.transition(ctx, invitationID, models.InvitationCancelled, "cancelledAt")
}

func (m *Manager) transition(ctx context.Context, invitationID string, status models.InvitationStatus, stampField string) error {
	inv, err := m.Get(ctx, invitationID)
	if err != nil {
		return err
	}
	if inv.Status != models.InvitationPending {
		return ErrNotPending
	}

	err = m.store.UpdateDocument(ctx, docstore.CollectionInvitations, invitationID, map[string]any{
		"status":   status,
		stampField: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to mark invitation %s: %w", status, err)
	}
	return nil
}

// CleanupExpired flips pending invitations past their expiry to expired and
// returns how many were swept. This is an on-demand maintenance sweep; the
// accept flow never depends on it having run.
func (m *Manager) CleanupExpired(ctx context.Context) (int, error) {
	all, err := m.list(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	count := 0
	for _, inv := range all {
		if inv.Status != models.InvitationPending || !inv.Expired(now) {
			continue
		}
		err := m.store.UpdateDocument(ctx, docstore.CollectionInvitations, inv.ID, map[string]any{
			"status":    models.InvitationExpired,
			"expiredAt": now,
		})
		if err != nil {
			return count, fmt.Errorf("failed to expire invitation %s: %w", inv.ID, err)
		}
		count++
	}
	return count, nil
}

func (m *Manager) emailAlreadyInvited(ctx context.Context, email, projectID string) (bool, error) {
	all, err := m.list(ctx)
	if err != nil {
		return false, err
	}
	for _, inv := range all {
		if inv.Email != email || inv.ProjectID != projectID {
			continue
		}
		if inv.Status == models.InvitationPending || inv.Status == models.InvitationAccepted {
			return true, nil
		}
	}
	return false, nil
}

func (m *Manager) list(ctx context.Context) ([]models.Invitation, error) {
	docs, err := m.store.GetDocuments(ctx, docstore.CollectionInvitations)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invitations: %w", err)
	}

	invitations := make([]models.Invitation, 0, len(docs))
	for _, doc := range docs {
		inv, err := decode(doc)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, nil
}

func decode(doc docstore.Document) (models.Invitation, error) {
	var inv models.Invitation
	if err := json.Unmarshal(doc.Data, &inv); err != nil {
		return models.Invitation{}, fmt.Errorf("failed to decode invitation %s: %v", doc.ID, err)
	}
	inv.ID = doc.ID
	return inv, nil
}

// NormalizeEmail lower-cases and trims an email the way it is persisted.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
