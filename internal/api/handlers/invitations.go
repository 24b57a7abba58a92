package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"zentra-api/internal/email"
	"zentra-api/internal/invitations"
	"zentra-api/internal/models"
	"zentra-api/internal/permissions"
	"zentra-api/internal/projects"

	"github.com/gin-gonic/gin"
)

// CreateInvitation godoc
// @Summary Invite someone to a project
// @Description Creates a pending invitation and sends the invite email best-effort
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project id"
// @Param invitation body object{email=string,role=string} true "Invitee email and role"
// @Success 200 {object} object{message=string,invitation=object{id=string,token=string,expiresAt=string}}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/projects/{id}/invitations [post]
func (h *Handler) CreateInvitation(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	projectID := c.Param("id")

	if !h.perms.HasPermission(c.Request.Context(), projectID, user.ID, permissions.ManageMembers) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to manage members"})
		return
	}

	project, err := h.projects.Get(c.Request.Context(), projectID)
	if errors.Is(err, projects.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		return
	}

	var request struct {
		Email string      `json:"email" binding:"required,email"`
		Role  models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email and role are required"})
		return
	}

	invitation, err := h.invites.Create(c.Request.Context(), invitations.CreateParams{
		Email:          request.Email,
		ProjectID:      projectID,
		ProjectName:    project.Name,
		Role:           request.Role,
		InvitedBy:      user.ID,
		InvitedByName:  user.DisplayName,
		InvitedByEmail: user.Email,
	})
	switch {
	case errors.Is(err, invitations.ErrSelfInvite):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot invite yourself"})
		return
	case errors.Is(err, invitations.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be admin or collaborator"})
		return
	case errors.Is(err, invitations.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "This email has already been invited to the project"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		return
	}

	// Best-effort: a failed send never rolls back the invitation.
	inviteLink := fmt.Sprintf("%s/accept-invite?token=%s", h.baseURL, invitation.Token)
	result, err := h.email.SendInviteEmail(c.Request.Context(), email.InviteEmail{
		Email:       invitation.Email,
		ProjectName: project.Name,
		InviterName: user.DisplayName,
		Role:        invitation.Role,
		InviteLink:  inviteLink,
	})
	if err != nil {
		log.Printf("failed to send invite email for invitation %s: %v", invitation.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invitation sent successfully",
		"invitation": gin.H{
			"id":        invitation.ID,
			"token":     invitation.Token,
			"email":     invitation.Email,
			"role":      invitation.Role,
			"expiresAt": invitation.ExpiresAt,
		},
		"email_sent": err == nil && result.Success,
	})
}

// ListProjectInvitations godoc
// @Summary List a project's invitations, newest first
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project id"
// @Success 200 {object} object{invitations=[]object{id=string,email=string,status=string}}
// @Failure 403 {object} object{error=string}
// @Router /api/projects/{id}/invitations [get]
func (h *Handler) ListProjectInvitations(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	projectID := c.Param("id")

	if !h.perms.HasPermission(c.Request.Context(), projectID, user.ID, permissions.ManageMembers) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to manage members"})
		return
	}

	list, err := h.invites.ProjectInvitations(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invitations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitations": list})
}

// GetInvitationByToken godoc
// @Summary Look up a pending invitation by token
// @Description Public endpoint backing the accept-invite page. The expired
// @Description flag is computed at read time; the stored status may still be pending.
// @Tags invitations
// @Produce json
// @Param id path string true "Invitation token"
// @Success 200 {object} object{invitation=object{projectName=string,role=string,email=string},expired=bool}
// @Failure 404 {object} object{error=string}
// @Router /api/invitations/{id} [get]
func (h *Handler) GetInvitationByToken(c *gin.Context) {
	invitation, err := h.invites.GetByToken(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invitation"})
		return
	}
	if invitation == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invitation": gin.H{
			"id":            invitation.ID,
			"email":         invitation.Email,
			"projectName":   invitation.ProjectName,
			"role":          invitation.Role,
			"invitedByName": invitation.InvitedByName,
			"expiresAt":     invitation.ExpiresAt,
		},
		"expired": invitation.Expired(time.Now().UTC()),
	})
}

// AcceptInvitation godoc
// @Summary Accept an invitation
// @Description The authenticated user's email must match the invitee email
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invitation id"
// @Success 200 {object} object{message=string,projectId=string,projectName=string,role=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Failure 410 {object} object{error=string}
// @Router /api/invitations/{id}/accept [post]
func (h *Handler) AcceptInvitation(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	result, err := h.invites.Accept(c.Request.Context(), c.Param("id"), user.ID, user.DisplayName, user.Email)
	switch {
	case errors.Is(err, invitations.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		return
	case errors.Is(err, invitations.ErrNotPending):
		c.JSON(http.StatusConflict, gin.H{"error": "This invitation has already been used or withdrawn"})
		return
	case errors.Is(err, invitations.ErrExpired):
		c.JSON(http.StatusGone, gin.H{"error": "This invitation has expired"})
		return
	case errors.Is(err, invitations.ErrEmailMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "This invitation was sent to a different email address"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept invitation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Invitation accepted successfully",
		"projectId":   result.ProjectID,
		"projectName": result.ProjectName,
		"role":        result.Role,
	})
}

// RejectInvitation godoc
// @Summary Reject an invitation
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invitation id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/invitations/{id}/reject [post]
func (h *Handler) RejectInvitation(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}

	err := h.invites.Reject(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, invitations.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		return
	case errors.Is(err, invitations.ErrNotPending):
		c.JSON(http.StatusConflict, gin.H{"error": "This invitation has already been used or withdrawn"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject invitation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation rejected"})
}

// CancelInvitation godoc
// @Summary Cancel a pending invitation
// @Description Owner only
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invitation id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/invitations/{id}/cancel [post]
func (h *Handler) CancelInvitation(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	invitationID := c.Param("id")

	invitation, err := h.invites.Get(c.Request.Context(), invitationID)
	if errors.Is(err, invitations.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invitation"})
		return
	}

	if !h.perms.HasPermission(c.Request.Context(), invitation.ProjectID, user.ID, permissions.ManageMembers) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to manage members"})
		return
	}

	err = h.invites.Cancel(c.Request.Context(), invitationID)
	switch {
	case errors.Is(err, invitations.ErrNotPending):
		c.JSON(http.StatusConflict, gin.H{"error": "This invitation has already been used or withdrawn"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel invitation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation cancelled"})
}

// CleanupInvitations godoc
// @Summary Sweep expired invitations
// @Description Flips pending invitations past their expiry to expired
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string,expired=int}
// @Router /api/invitations/cleanup [post]
func (h *Handler) CleanupInvitations(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}

	count, err := h.invites.CleanupExpired(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clean up invitations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Expired invitations cleaned up",
		"expired": count,
	})
}
