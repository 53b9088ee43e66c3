package repositories

import (
	"github.com/taskdeck-simple/database"
	"github.com/taskdeck-simple/models"
)

// AssignmentRepository handles database operations for task assignments
type AssignmentRepository struct{}

// NewAssignmentRepository creates a new assignment repository instance
func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{}
}

// Exists checks whether a user is already assigned to a task
func (r *AssignmentRepository) Exists(taskID, userID string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.TaskAssignment{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a new assignment row
func (r *AssignmentRepository) Create(assignment models.TaskAssignment) error {
	return database.DB.Create(&assignment).Error
}

// Delete removes an assignment; removing an absent row is not an error
func (r *AssignmentRepository) Delete(taskID, userID string) error {
	return database.DB.
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Delete(&models.TaskAssignment{}).Error
}

// ListUserIDsByTask returns the IDs of every user currently assigned
func (r *AssignmentRepository) ListUserIDsByTask(taskID string) ([]string, error) {
	var userIDs []string
	err := database.DB.Model(&models.TaskAssignment{}).
		Where("task_id = ?", taskID).
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

// ListByTask retrieves all assignments on a task with their users
func (r *AssignmentRepository) ListByTask(taskID string) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	result := database.DB.Preload("User").
		Where("task_id = ?", taskID).
		Order("assigned_at asc").
		Find(&assignments)
	return assignments, result.Error
}

// ListByTasks retrieves assignments for a set of tasks in one query
func (r *AssignmentRepository) ListByTasks(taskIDs []string) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	if len(taskIDs) == 0 {
		return assignments, nil
	}
	result := database.DB.Preload("User").
		Where("task_id IN ?", taskIDs).
		Order("assigned_at asc").
		Find(&assignments)
	return assignments, result.Error
}
