package dto

import (
	"time"

	"github.com/taskdeck-simple/models"
)

// AddMemberRequest represents the payload for adding a project member
type AddMemberRequest struct {
	UserID string             `json:"userId" binding:"required"`
	Role   models.ProjectRole `json:"role"`
}

// MemberResponse represents a project member in API responses
type MemberResponse struct {
	UserID      string             `json:"userId"`
	DisplayName string             `json:"displayName"`
	Email       string             `json:"email"`
	Role        models.ProjectRole `json:"role"`
	JoinedAt    time.Time          `json:"joinedAt"`
}
