package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

// Valid reports whether the status is one of the known lifecycle states
func (s TaskStatus) Valid() bool {
	return s == StatusToDo || s == StatusInProgress || s == StatusDone
}

// Priority returns the listing sort rank for the status (To Do first)
func (s TaskStatus) Priority() int {
	switch s {
	case StatusToDo:
		return 0
	case StatusInProgress:
		return 1
	case StatusDone:
		return 2
	}
	return 3
}

// Task represents a unit of work inside a project
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID   string     `json:"projectId" gorm:"type:uuid;not null;index"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description" gorm:"type:text"`
	Status      TaskStatus `json:"status" gorm:"type:varchar(20);not null;default:'To Do'"`
	DueDate     *time.Time `json:"dueDate" gorm:"default:null"`
	CreatedBy   string     `json:"createdBy" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	Project     Project          `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Creator     User             `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Assignments []TaskAssignment `json:"assignments,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Comments    []Comment        `json:"comments,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
