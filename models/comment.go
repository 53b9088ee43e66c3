package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a discussion entry on a task.
// Only the author may mutate it; project admins have no override here.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	TaskID    string    `json:"taskId" gorm:"type:uuid;not null;index"`
	AuthorID  string    `json:"authorId" gorm:"type:uuid;not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Task   Task `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
