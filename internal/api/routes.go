// internal/api/routes.go
package api

import (
	"zentra-api/internal/api/handlers"
	"zentra-api/internal/api/middleware"
	"zentra-api/internal/auth"
	"zentra-api/internal/ratelimit"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRouter(h *handlers.Handler, tokens *auth.Service, rl *ratelimit.RateLimiter) *gin.Engine {
	router := gin.Default()

	router.GET("/", h.Home)
	router.GET("/health", h.Home)

	//Swagger Route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth routes
	authGroup := router.Group("/auth")
	authGroup.Use(middleware.AuthRateLimit(rl))
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", AuthMiddleware(tokens), h.Me)
	}

	// Public invitation lookup (the accept-invite page hits this before login)
	router.GET("/api/invitations/:id", h.GetInvitationByToken)

	// Protected routes
	api := router.Group("/api")
	api.Use(AuthMiddleware(tokens))
	{
		api.POST("/projects", h.CreateProject)
		api.GET("/projects", h.ListProjects)
		api.GET("/projects/:id", h.GetProject)
		api.PUT("/projects/:id", h.UpdateProject)
		api.DELETE("/projects/:id", h.DeleteProject)
		api.GET("/projects/:id/stats", h.ProjectStats)
		api.GET("/projects/:id/permissions", h.ProjectPermissions)

		api.POST("/projects/:id/tasks", h.CreateTask)
		api.GET("/projects/:id/tasks", h.ListProjectTasks)
		api.GET("/tasks", h.ListMyTasks)
		api.PUT("/tasks/:id", h.UpdateTask)
		api.DELETE("/tasks/:id", h.DeleteTask)

		api.POST("/tasks/:id/comments", h.CreateComment)
		api.GET("/tasks/:id/comments", h.ListTaskComments)
		api.GET("/tasks/:id/comments/stream", h.StreamTaskComments)
		api.PUT("/comments/:id", h.UpdateComment)
		api.DELETE("/comments/:id", h.DeleteComment)

		api.GET("/projects/:id/members", h.ListMembers)
		api.PUT("/projects/:id/members/:memberId", h.UpdateMemberRole)
		api.DELETE("/projects/:id/members/:memberId", h.RemoveMember)

		api.POST("/projects/:id/invitations", middleware.InviteRateLimit(rl), h.CreateInvitation)
		api.GET("/projects/:id/invitations", h.ListProjectInvitations)
		api.POST("/invitations/:id/accept", h.AcceptInvitation)
		api.POST("/invitations/:id/reject", h.RejectInvitation)
		api.POST("/invitations/:id/cancel", h.CancelInvitation)
		api.POST("/invitations/cleanup", h.CleanupInvitations)

		api.GET("/dashboard", h.Dashboard)
	}

	return router
}
