package services

import (
	"time"

	"github.com/taskdeck-simple/apperr"
	"github.com/taskdeck-simple/models"
	"github.com/taskdeck-simple/repositories"
)

// minPurgeDays is the floor for retention cleanup; read notifications
// younger than a week are never purged.
const minPurgeDays = 7

// defaultListLimit caps notification listings when the caller asks for
// nothing specific.
const defaultListLimit = 50

// NotificationService records and serves per-user notifications. Dispatch is
// a side channel: callers log a failed dispatch and move on, it never fails
// the mutation that triggered it.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
}

// NewNotificationService creates a new notification service instance
func NewNotificationService() *NotificationService {
	return &NotificationService{
		notificationRepo: repositories.NewNotificationRepository(),
	}
}

// Dispatch records one notification row for a recipient and returns its ID
func (s *NotificationService) Dispatch(recipientID string, ntype models.NotificationType, message string, taskID, projectID, actorID *string) (string, error) {
	notification := models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		TaskID:      taskID,
		ProjectID:   projectID,
		Type:        ntype,
		Message:     message,
	}
	created, err := s.notificationRepo.Create(notification)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

// ListForUser retrieves a user's notifications, newest first
func (s *NotificationService) ListForUser(userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return s.notificationRepo.ListForUser(userID, limit)
}

// UnreadCount counts the user's unread notifications
func (s *NotificationService) UnreadCount(userID string) (int64, error) {
	return s.notificationRepo.CountUnread(userID)
}

// MarkRead flags one notification as read. Returns false when the
// notification does not belong to the caller or does not exist.
func (s *NotificationService) MarkRead(notificationID, userID string) (bool, error) {
	affected, err := s.notificationRepo.MarkRead(notificationID, userID)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// MarkAllRead flags every unread notification of a user as read and
// returns the count updated
func (s *NotificationService) MarkAllRead(userID string) (int64, error) {
	return s.notificationRepo.MarkAllRead(userID)
}

// PurgeOld deletes the user's notifications that are both read and older
// than minDays. minDays below the 7-day floor is rejected.
func (s *NotificationService) PurgeOld(userID string, minDays int) (int64, error) {
	if minDays < minPurgeDays {
		return 0, apperr.NewValidation("retention threshold must be at least 7 days")
	}
	cutoff := time.Now().AddDate(0, 0, -minDays)
	return s.notificationRepo.DeleteReadBefore(userID, cutoff)
}
