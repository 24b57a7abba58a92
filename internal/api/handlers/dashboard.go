package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Dashboard godoc
// @Summary Get dashboard counters for the authenticated user
// @Description Active projects, pending tasks, total tasks and teammate count
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{activeProjects=int,pendingTasks=int,totalTasks=int,teamMembers=int}
// @Failure 401 {object} object{error=string}
// @Router /api/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	activeProjects, err := h.projects.CountActive(ctx, user.ID)
	if err != nil {
		log.Printf("dashboard: counting active projects for %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	pendingTasks, err := h.tasks.CountPending(ctx, user.ID)
	if err != nil {
		log.Printf("dashboard: counting pending tasks for %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	totalTasks, err := h.tasks.CountAll(ctx, user.ID)
	if err != nil {
		log.Printf("dashboard: counting tasks for %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	teamMembers, err := h.projects.CountMembers(ctx, user.ID)
	if err != nil {
		log.Printf("dashboard: counting team members for %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activeProjects": activeProjects,
		"pendingTasks":   pendingTasks,
		"totalTasks":     totalTasks,
		"teamMembers":    teamMembers,
	})
}
