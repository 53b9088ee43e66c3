package repositories

import (
	"time"

	"github.com/taskdeck-simple/database"
	"github.com/taskdeck-simple/models"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct{}

// NewNotificationRepository creates a new notification repository instance
func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

// Create inserts a new notification row
func (r *NotificationRepository) Create(notification models.Notification) (models.Notification, error) {
	result := database.DB.Create(&notification)
	return notification, result.Error
}

// ListForUser retrieves a user's notifications, newest first
func (r *NotificationRepository) ListForUser(userID string, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	result := database.DB.
		Where("recipient_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&notifications)
	return notifications, result.Error
}

// MarkRead sets the read flag on one notification, touching only rows that
// belong to the given user. Returns how many rows changed.
func (r *NotificationRepository) MarkRead(id, userID string) (int64, error) {
	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, userID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// MarkAllRead sets the read flag on every unread notification of a user
// and returns the count updated
func (r *NotificationRepository) MarkAllRead(userID string) (int64, error) {
	result := database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// DeleteReadBefore removes read notifications created before the cutoff
// and returns the count deleted
func (r *NotificationRepository) DeleteReadBefore(userID string, cutoff time.Time) (int64, error) {
	result := database.DB.
		Where("recipient_id = ? AND is_read = ? AND created_at < ?", userID, true, cutoff).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

// CountUnread counts a user's unread notifications
func (r *NotificationRepository) CountUnread(userID string) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
