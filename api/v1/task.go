package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck-simple/dto"
	"github.com/taskdeck-simple/services"
)

var taskService = services.NewTaskService()

// ListTasks returns a project's tasks; query parameters filter the listing.
// All provided filters combine with AND; assignee accepts a user id or the
// "unassigned" sentinel.
func ListTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter := dto.TaskFilter{
		Status:   c.Query("status"),
		Assignee: c.Query("assignee"),
		DueStart: c.Query("dueStart"),
		DueEnd:   c.Query("dueEnd"),
		Search:   c.Query("search"),
	}

	tasks, err := taskService.List(c.Param("id"), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OK",
		"tasks":   tasks,
	})
}

// GetTask returns one task with its assignees
func GetTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	detail, err := taskService.Get(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "OK",
		"task":      detail.Task,
		"assignees": detail.Assignees,
	})
}

// CreateTask creates a task in a project
func CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	task, err := taskService.Create(c.Param("id"), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Task created successfully",
		"task":    task,
	})
}

// UpdateTask applies a partial update to a task's fields
func UpdateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	task, err := taskService.Update(c.Param("id"), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task updated successfully",
		"task":    task,
	})
}

// UpdateTaskStatus moves a task through the status state machine
func UpdateTaskStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	task, err := taskService.UpdateStatus(c.Param("id"), userID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task status updated",
		"task":    task,
	})
}

// AssignTask assigns one user or a batch of users to a task. A batch
// reports partial success with per-user failure reasons.
func AssignTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	if len(req.UserIDs) > 0 {
		result, err := taskService.AssignMany(c.Param("id"), userID, req.UserIDs)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Assignment processed",
			"result":  result,
		})
		return
	}

	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "userId or userIds is required",
		})
		return
	}

	if err := taskService.Assign(c.Param("id"), userID, req.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User assigned successfully",
	})
}

// UnassignTask removes a user from a task; removing an absent assignment
// still succeeds
func UnassignTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "userId is required",
		})
		return
	}

	if err := taskService.Unassign(c.Param("id"), userID, req.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User unassigned successfully",
	})
}

// DeleteTask removes a task with its assignments and comments
func DeleteTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := taskService.Delete(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted successfully",
	})
}
