// internal/api/docs.go
package api

import "time"

// These types are for Swagger documentation
type RegisterRequest struct {
	Email       string `json:"email" example:"user@example.com"`
	Password    string `json:"password" example:"password123"`
	DisplayName string `json:"displayName" example:"Ada Lovelace"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"password123"`
}

type ProjectResponse struct {
	ID        string    `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	Name      string    `json:"name" example:"Website redesign"`
	Status    string    `json:"status" example:"active"`
	Priority  string    `json:"priority" example:"medium"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type InvitationRequest struct {
	Email string `json:"email" example:"teammate@example.com"`
	Role  string `json:"role" example:"collaborator"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"Error message"`
}
