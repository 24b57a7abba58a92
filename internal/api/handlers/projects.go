package handlers

import (
	"errors"
	"net/http"

	"zentra-api/internal/models"
	"zentra-api/internal/permissions"
	"zentra-api/internal/projects"

	"github.com/gin-gonic/gin"
)

// CreateProject godoc
// @Summary Create a project
// @Description Create a project; the creator becomes its owner
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project body object{name=string,description=string,priority=string} true "Project details"
// @Success 200 {object} object{message=string,project=object{id=string,name=string}}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /api/projects [post]
func (h *Handler) CreateProject(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var request struct {
		Name        string          `json:"name" binding:"required"`
		Description string          `json:"description"`
		Priority    models.Priority `json:"priority"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project name is required"})
		return
	}

	project := models.Project{
		Name:          request.Name,
		Description:   request.Description,
		Priority:      request.Priority,
		Status:        models.ProjectActive,
		CreatedBy:     user.ID,
		CreatedByName: user.DisplayName,
	}

	id, err := h.projects.Create(c.Request.Context(), project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project created successfully",
		"project": gin.H{
			"id":   id,
			"name": project.Name,
		},
	})
}

// ListProjects godoc
// @Summary List the caller's projects
// @Description Projects the caller created or belongs to, most recently updated first
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{projects=[]object{id=string,name=string,status=string}}
// @Failure 500 {object} object{error=string}
// @Router /api/projects [get]
func (h *Handler) ListProjects(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	list, err := h.projects.UserProjects(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": list})
}

// GetProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project id"
// @Success 200 {object} object{project=object{id=string,name=string,status=string}}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/projects/{id} [get]
func (h *Handler) GetProject(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	projectID := c.Param("id")

	project, err := h.projects.Get(c.Request.Context(), projectID)
	if errors.Is(err, projects.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		return
	}

	role, err := h.perms.GetRole(c.Request.Context(), projectID, user.ID)
	if err != nil || (role == "" && project.CreatedBy != user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// UpdateProject godoc
// @Summary Update a project
// @Description Update name, description, status or priority; owner or admin only
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project id"
// @Param project body object{name=string,description=string,status=string,priority=string} true "Fields to update"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/projects/{id} [put]
func (h *Handler) UpdateProject(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	projectID := c.Param("id")

	caps := h.perms.Capabilities(c.Request.Context(), projectID, user.ID)
	if !caps.CanEditProject {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to edit this project"})
		return
	}

	var request struct {
		Name        *string               `json:"name"`
		Description *string               `json:"description"`
		Status      *models.ProjectStatus `json:"status"`
		Priority    *models.Priority      `json:"priority"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	patch := map[string]any{}
	if request.Name != nil {
		patch["name"] = *request.Name
	}
	if request.Description != nil {
		patch["description"] = *request.Description
	}
	if request.Status != nil {
		patch["status"] = *request.Status
	}
	if request.Priority != nil {
		patch["priority"] = *request.Priority
	}
	if len(patch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	err := h.projects.Update(c.Request.Context(), projectID, patch)
	if errors.Is(err, projects.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project updated successfully"})
}

// DeleteProject godoc
// @Summary Delete a project
// @Description Delete a project and cascade to its tasks, members and invitations; owner only
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/projects/{id} [delete]
func (h *Handler) DeleteProject(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	projectID := c.Param("id")

	if !h.perms.HasPermission(c.Request.Context(), projectID, user.ID, permissions.DeleteProject) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the project owner can delete it"})
		return
	}

	err := h.projects.Delete(c.Request.Context(), projectID)
	if errors.Is(err, projects.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// ProjectStats godoc
// @Summary Task statistics for a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project id"
// @Success 200 {object} object{stats=object{total=int,pending=int,inProgress=int,completed=int,cancelled=int}}
// @Failure 403 {object} object{error=string}
// @Router /api/projects/{id}/stats [get]
func (h *Handler) ProjectStats(c *gin.Context) {
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

	stats, err := h.tasks.ProjectStats(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// ProjectPermissions godoc
// @Summary Capability set for the caller on a project
// @Description The UI uses this to decide which controls to render
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project id"
// @Success 200 {object} object{permissions=object{role=string,canCreateTasks=bool,canDeleteProject=bool}}
// @Router /api/projects/{id}/permissions [get]
func (h *Handler) ProjectPermissions(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	caps := h.perms.Capabilities(c.Request.Context(), c.Param("id"), user.ID)
	c.JSON(http.StatusOK, gin.H{"permissions": caps})
}
