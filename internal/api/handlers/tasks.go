package handlers

import (
	"errors"
	"net/http"
	"time"

	"zentra-api/internal/models"
	"zentra-api/internal/permissions"
	"zentra-api/internal/projects"
	"zentra-api/internal/tasks"

	"github.com/gin-gonic/gin"
)

// CreateTask godoc
// @Summary Create a task in a project
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project id"
// @Param task body object{title=string,description=string,priority=string,assigned_to=string,due_date=string} true "Task details"
// @Success 200 {object} object{message=string,task=object{id=string,title=string}}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/projects/{id}/tasks [post]
func (h *Handler) CreateTask(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	projectID := c.Param("id")

	if !h.perms.HasPermission(c.Request.Context(), projectID, user.ID, permissions.CreateTasks) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to create tasks"})
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
		Title          string          `json:"title" binding:"required"`
		Description    string          `json:"description"`
		Priority       models.Priority `json:"priority"`
		AssignedTo     string          `json:"assigned_to"`
		AssignedToName string          `json:"assigned_to_name"`
		DueDate        *time.Time      `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task title is required"})
		return
	}

	task := models.Task{
		Title:          request.Title,
		Description:    request.Description,
		Status:         models.TaskPending,
		Priority:       request.Priority,
		ProjectID:      projectID,
		ProjectName:    project.Name,
		AssignedTo:     request.AssignedTo,
		AssignedToName: request.AssignedToName,
		CreatedBy:      user.ID,
		CreatedByName:  user.DisplayName,
		DueDate:        request.DueDate,
	}

	id, err := h.tasks.Create(c.Request.Context(), task)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task created successfully",
		"task": gin.H{
			"id":    id,
			"title": task.Title,
		},
	})
}

// ListProjectTasks godoc
// @Summary List a project's tasks
// @Description Owners and admins see every task; collaborators only tasks assigned to them
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project id"
// @Success 200 {object} object{tasks=[]object{id=string,title=string,status=string}}
// @Failure 403 {object} object{error=string}
// @Router /api/projects/{id}/tasks [get]
func (h *Handler) ListProjectTasks(c *gin.Context) {
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

	list, err := h.tasks.ProjectTasks(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	if !permissions.Granted(role, permissions.ViewAllTasks) {
		var assigned []models.Task
		for _, t := range list {
			if t.AssignedTo == user.ID || t.CreatedBy == user.ID {
				assigned = append(assigned, t)
			}
		}
		list = assigned
	}

	c.JSON(http.StatusOK, gin.H{"tasks": list})
}

// ListMyTasks godoc
// @Summary List the caller's tasks across all projects
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{tasks=[]object{id=string,title=string,status=string}}
// @Failure 500 {object} object{error=string}
// @Router /api/tasks [get]
func (h *Handler) ListMyTasks(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	list, err := h.tasks.UserTasks(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": list})
}

// UpdateTask godoc
// @Summary Update a task
// @Description Status changes are gated per role; collaborators may only move tasks between pending and in_progress
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task id"
// @Param task body object{title=string,description=string,status=string,priority=string} true "Fields to update"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/tasks/{id} [put]
func (h *Handler) UpdateTask(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	taskID := c.Param("id")

	task, err := h.tasks.Get(c.Request.Context(), taskID)
	if errors.Is(err, tasks.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		return
	}

	var request struct {
		Title          *string            `json:"title"`
		Description    *string            `json:"description"`
		Status         *models.TaskStatus `json:"status"`
		Priority       *models.Priority   `json:"priority"`
		AssignedTo     *string            `json:"assigned_to"`
		AssignedToName *string            `json:"assigned_to_name"`
		DueDate        *time.Time         `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	patch := map[string]any{}
	if request.Title != nil {
		patch["title"] = *request.Title
	}
	if request.Description != nil {
		patch["description"] = *request.Description
	}
	if request.Priority != nil {
		patch["priority"] = *request.Priority
	}
	if request.AssignedTo != nil {
		patch["assignedTo"] = *request.AssignedTo
	}
	if request.AssignedToName != nil {
		patch["assignedToName"] = *request.AssignedToName
	}
	if request.DueDate != nil {
		patch["dueDate"] = *request.DueDate
	}

	// Non-status edits require edit_tasks; status changes go through the
	// role-specific transition rule.
	if len(patch) > 0 && !h.perms.HasPermission(c.Request.Context(), task.ProjectID, user.ID, permissions.EditTasks) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to edit tasks"})
		return
	}
	if request.Status != nil {
		if !h.perms.CanSetTaskStatus(c.Request.Context(), task.ProjectID, user.ID, *request.Status) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Your role cannot set this task status"})
			return
		}
		patch["status"] = *request.Status
	}
	if len(patch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	err = h.tasks.Update(c.Request.Context(), taskID, patch)
	if errors.Is(err, tasks.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully"})
}

// DeleteTask godoc
// @Summary Delete a task
// @Description Owner only
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/tasks/{id} [delete]
func (h *Handler) DeleteTask(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	taskID := c.Param("id")

	task, err := h.tasks.Get(c.Request.Context(), taskID)
	if errors.Is(err, tasks.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		return
	}

	if !h.perms.HasPermission(c.Request.Context(), task.ProjectID, user.ID, permissions.DeleteTasks) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete tasks"})
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), taskID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
