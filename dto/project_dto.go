package dto

import (
	"time"

	"github.com/taskdeck-simple/models"
)

// CreateProjectRequest represents the payload for creating a project
type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// UpdateProjectRequest represents the payload for updating a project
type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Archived    bool               `json:"archived"`
	CreatorID   string             `json:"creatorId"`
	Role        models.ProjectRole `json:"role,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
