package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType represents the kind of event a notification records
type NotificationType string

const (
	NotificationTaskAssigned NotificationType = "task_assigned"
	NotificationTaskUpdated  NotificationType = "task_updated"
	NotificationCommentAdded NotificationType = "comment_added"
	NotificationMemberAdded  NotificationType = "member_added"
)

// Notification is an append-only record of an event relevant to a user.
// Only the read flag changes after creation; rows leave the table through
// retention cleanup alone.
type Notification struct {
	ID          string           `json:"id" gorm:"primaryKey;type:uuid"`
	RecipientID string           `json:"recipientId" gorm:"type:uuid;not null;index"`
	ActorID     *string          `json:"actorId" gorm:"type:uuid;default:null"`
	TaskID      *string          `json:"taskId" gorm:"type:uuid;default:null"`
	ProjectID   *string          `json:"projectId" gorm:"type:uuid;default:null"`
	Type        NotificationType `json:"type" gorm:"type:varchar(30);not null"`
	Message     string           `json:"message" gorm:"not null"`
	IsRead      bool             `json:"isRead" gorm:"not null;default:false"`
	CreatedAt   time.Time        `json:"createdAt"`

	// Relations
	Recipient User `json:"recipient,omitempty" gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
