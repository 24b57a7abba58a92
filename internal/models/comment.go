package models

import "time"

type Comment struct {
	ID         string    `json:"id,omitempty"`
	TaskID     string    `json:"taskId"`
	ProjectID  string    `json:"projectId"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	UserEmail  string    `json:"userEmail"`
	UserAvatar string    `json:"userAvatar,omitempty"`
	Text       string    `json:"text"`
	Edited     bool      `json:"edited"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
