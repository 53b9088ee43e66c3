package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck-simple/dto"
	"github.com/taskdeck-simple/services"
)

var notificationService = services.NewNotificationService()

// ListNotifications returns the caller's notifications, newest first.
// Clients poll this endpoint; there is no push channel.
func ListNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}

	notifications, err := notificationService.ListForUser(userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	unread, err := notificationService.UnreadCount(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "OK",
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

// MarkNotificationRead flags one of the caller's notifications as read
func MarkNotificationRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	updated, err := notificationService.MarkRead(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Resource not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification marked as read",
	})
}

// MarkAllNotificationsRead flags every unread notification of the caller
func MarkAllNotificationsRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := notificationService.MarkAllRead(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notifications marked as read",
		"count":   count,
	})
}

// PurgeNotifications deletes the caller's read notifications older than the
// requested day threshold (minimum 7)
func PurgeNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.PurgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	count, err := notificationService.PurgeOld(userID, req.Days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Old notifications purged",
		"count":   count,
	})
}
