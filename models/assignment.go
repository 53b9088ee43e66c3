package models

import "time"

// TaskAssignment binds a user to a task they are responsible for.
// Distinct from authorship: the creator of a task is not implicitly assigned.
type TaskAssignment struct {
	TaskID     string    `json:"taskId" gorm:"primaryKey;type:uuid"`
	UserID     string    `json:"userId" gorm:"primaryKey;type:uuid"`
	AssignedAt time.Time `json:"assignedAt" gorm:"autoCreateTime"`

	// Relations
	Task Task `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
