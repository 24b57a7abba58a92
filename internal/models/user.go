package models

import "time"

type User struct {
	ID            string    `json:"id,omitempty"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"displayName"`
	PhotoURL      string    `json:"photoURL,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
	PasswordHash  string    `json:"passwordHash,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Public returns the user without credential material, for API responses.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
