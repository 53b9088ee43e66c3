package dto

import (
	"time"

	"github.com/taskdeck-simple/models"
)

// CreateTaskRequest represents the payload for creating a task
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"` // calendar date, "2006-01-02"
}

// UpdateTaskRequest represents a partial task update; nil fields keep
// their prior values
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
}

// UpdateStatusRequest represents a status transition request
type UpdateStatusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

// AssignRequest represents the payload for assigning users to a task
type AssignRequest struct {
	UserID  string   `json:"userId"`
	UserIDs []string `json:"userIds"`
}

// AssignFailure names one user a bulk assignment could not add
type AssignFailure struct {
	UserID string `json:"userId"`
	Reason string `json:"reason"`
}

// AssignManyResult reports the mixed outcome of a bulk assignment
type AssignManyResult struct {
	Succeeded int             `json:"succeeded"`
	Failures  []AssignFailure `json:"failures"`
}

// TaskFilter represents filter criteria for project task listings.
// All provided filters combine conjunctively.
type TaskFilter struct {
	Status   string // one of the task statuses, or empty
	Assignee string // user id, or "unassigned" sentinel, or empty
	DueStart string // inclusive lower bound, "2006-01-02"
	DueEnd   string // inclusive upper bound, "2006-01-02"
	Search   string // matched against title and description
}

// AssigneeItem is the compact assignee annotation on task listings
type AssigneeItem struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// TaskListItem represents a task row in listings, annotated with its
// creator's display name and assignee list
type TaskListItem struct {
	ID          string            `json:"id"`
	ProjectID   string            `json:"projectId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	DueDate     *time.Time        `json:"dueDate"`
	CreatedBy   string            `json:"createdBy"`
	CreatorName string            `json:"creatorName"`
	Assignees   []AssigneeItem    `json:"assignees"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// TaskDetailResponse represents a single task with its assignees
type TaskDetailResponse struct {
	Task      models.Task    `json:"task"`
	Assignees []AssigneeItem `json:"assignees"`
}
