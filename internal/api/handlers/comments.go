package handlers

import (
	"errors"
	"io"
	"net/http"

	"zentra-api/internal/comments"
	"zentra-api/internal/docstore"
	"zentra-api/internal/models"
	"zentra-api/internal/permissions"
	"zentra-api/internal/tasks"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// CreateComment godoc
// @Summary Comment on a task
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task id"
// @Param comment body object{text=string} true "Comment text"
// @Success 200 {object} object{message=string,comment=object{id=string,text=string}}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/tasks/{id}/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	task, ok := h.taskForComment(c)
	if !ok {
		return
	}

	if !h.perms.HasPermission(c.Request.Context(), task.ProjectID, user.ID, permissions.CommentTasks) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to comment on this task"})
		return
	}

	var request struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	comment, err := h.comments.Add(c.Request.Context(), models.Comment{
		TaskID:     task.ID,
		ProjectID:  task.ProjectID,
		UserID:     user.ID,
		UserName:   user.DisplayName,
		UserEmail:  user.Email,
		UserAvatar: user.PhotoURL,
		Text:       request.Text,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

// ListTaskComments godoc
// @Summary List a task's comments, oldest first
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task id"
// @Success 200 {object} object{comments=[]object{id=string,text=string,userName=string}}
// @Failure 403 {object} object{error=string}
// @Router /api/tasks/{id}/comments [get]
func (h *Handler) ListTaskComments(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	task, ok := h.taskForComment(c)
	if !ok {
		return
	}

	role, err := h.perms.GetRole(c.Request.Context(), task.ProjectID, user.ID)
	if err != nil || role == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this project"})
		return
	}

	list, err := h.comments.TaskComments(c.Request.Context(), task.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": list})
}

// StreamTaskComments godoc
// @Summary Stream comment changes for a task as server-sent events
// @Description The subscription is released when the client disconnects
// @Tags comments
// @Produce text/event-stream
// @Security BearerAuth
// @Param id path string true "Task id"
// @Failure 403 {object} object{error=string}
// @Router /api/tasks/{id}/comments/stream [get]
func (h *Handler) StreamTaskComments(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	task, ok := h.taskForComment(c)
	if !ok {
		return
	}

	role, err := h.perms.GetRole(c.Request.Context(), task.ProjectID, user.ID)
	if err != nil || role == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this project"})
		return
	}

	events := make(chan docstore.Event, 16)
	unsubscribe := h.store.Subscribe(docstore.CollectionComments, func(ev docstore.Event) {
		// Deletes carry no body and are forwarded; clients re-fetch on them.
		if len(ev.Data) > 0 {
			var body struct {
				TaskID string `json:"taskId"`
			}
			if err := json.Unmarshal(ev.Data, &body); err != nil || body.TaskID != task.ID {
				return
			}
		}
		select {
		case events <- ev:
		default:
			// Slow consumer; drop rather than block writers.
		}
	})
	defer unsubscribe()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case ev := <-events:
			c.SSEvent("comment", ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// UpdateComment godoc
// @Summary Edit a comment
// @Description Only the comment author may edit it
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment id"
// @Param comment body object{text=string} true "New text"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/comments/{id} [put]
func (h *Handler) UpdateComment(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	commentID := c.Param("id")

	canManage, err := h.comments.CanManage(c.Request.Context(), commentID, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comment"})
		return
	}
	if !canManage {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the comment author can edit it"})
		return
	}

	var request struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	err = h.comments.Update(c.Request.Context(), commentID, request.Text)
	if errors.Is(err, comments.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment updated successfully"})
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Only the comment author may delete it
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/comments/{id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	commentID := c.Param("id")

	canManage, err := h.comments.CanManage(c.Request.Context(), commentID, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comment"})
		return
	}
	if !canManage {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the comment author can delete it"})
		return
	}

	err = h.comments.Delete(c.Request.Context(), commentID)
	if errors.Is(err, comments.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

func (h *Handler) taskForComment(c *gin.Context) (*models.Task, bool) {
	task, err := h.tasks.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, tasks.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return nil, false
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		return nil, false
	}
	return task, true
}
