package handlers

import (
	"errors"
	"net/http"

	"zentra-api/internal/members"
	"zentra-api/internal/models"
	"zentra-api/internal/permissions"

	"github.com/gin-gonic/gin"
)

// ListMembers godoc
// @Summary List a project's active members
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project id"
// @Success 200 {object} object{members=[]object{id=string,userName=string,role=string}}
// @Failure 403 {object} object{error=string}
// @Router /api/projects/{id}/members [get]
func (h *Handler) ListMembers(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	projectID := c.Param("id")

	role, err := h.perms.GetRole(c.Request.Context(), projectID, user.ID)
	if err != nil || role == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this project"})
		return
	}

	list, err := h.members.ProjectMembers(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": list})
}

// UpdateMemberRole godoc
// @Summary Change a member's role
// @Description Owner only; the owner's own membership cannot be demoted
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project id"
// @Param memberId path string true "Membership id"
// @Param role body object{role=string} true "New role"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/projects/{id}/members/{memberId} [put]
func (h *Handler) UpdateMemberRole(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	projectID := c.Param("id")
	memberID := c.Param("memberId")

	if !h.perms.HasPermission(c.Request.Context(), projectID, user.ID, permissions.ManageMembers) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to manage members"})
		return
	}

	var request struct {
		Role models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role is required"})
		return
	}
	if request.Role != models.RoleAdmin && request.Role != models.RoleCollaborator {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be admin or collaborator"})
		return
	}

	member, err := h.members.Get(c.Request.Context(), memberID)
	if errors.Is(err, members.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch member"})
		return
	}
	if member.ProjectID != projectID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}
	if member.Role == models.RoleOwner {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The project owner's role cannot be changed"})
		return
	}

	if err := h.members.UpdateRole(c.Request.Context(), memberID, request.Role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member role updated successfully"})
}

// RemoveMember godoc
// @Summary Remove a member from a project
// @Description Owner only; removal is a soft delete and the owner cannot be removed
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project id"
// @Param memberId path string true "Membership id"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/projects/{id}/members/{memberId} [delete]
func (h *Handler) RemoveMember(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	projectID := c.Param("id")
	memberID := c.Param("memberId")

	if !h.perms.HasPermission(c.Request.Context(), projectID, user.ID, permissions.ManageMembers) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to manage members"})
		return
	}

	member, err := h.members.Get(c.Request.Context(), memberID)
	if errors.Is(err, members.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch member"})
		return
	}
	if member.ProjectID != projectID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}
	if member.Role == models.RoleOwner {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The project owner cannot be removed"})
		return
	}

	if err := h.members.Remove(c.Request.Context(), memberID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}
