package handlers

import (
	"zentra-api/internal/comments"
	"zentra-api/internal/docstore"
	"zentra-api/internal/email"
	"zentra-api/internal/identity"
	"zentra-api/internal/invitations"
	"zentra-api/internal/members"
	"zentra-api/internal/models"
	"zentra-api/internal/permissions"
	"zentra-api/internal/projects"
	"zentra-api/internal/tasks"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Store       docstore.Store
	Identity    *identity.Service
	Permissions *permissions.Engine
	Projects    *projects.Repository
	Tasks       *tasks.Repository
	Comments    *comments.Repository
	Members     *members.Repository
	Invitations *invitations.Manager
	Email       email.Sink
	// AppBaseURL is the web app origin used to build invitation links.
	AppBaseURL string
}

type Handler struct {
	store    docstore.Store
	identity *identity.Service
	perms    *permissions.Engine
	projects *projects.Repository
	tasks    *tasks.Repository
	comments *comments.Repository
	members  *members.Repository
	invites  *invitations.Manager
	email    email.Sink
	baseURL  string
}

func NewHandler(deps Deps) *Handler {
	return &Handler{
		store:    deps.Store,
		identity: deps.Identity,
		perms:    deps.Permissions,
		projects: deps.Projects,
		tasks:    deps.Tasks,
		comments: deps.Comments,
		members:  deps.Members,
		invites:  deps.Invitations,
		email:    deps.Email,
		baseURL:  deps.AppBaseURL,
	}
}

// currentUser loads the authenticated user set by the auth middleware.
func (h *Handler) currentUser(c *gin.Context) (*models.User, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	user, err := h.identity.UserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return user, true
}
