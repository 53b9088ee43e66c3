package repositories

import (
	"github.com/taskdeck-simple/database"
	"github.com/taskdeck-simple/models"
)

// CommentRepository handles database operations for comments
type CommentRepository struct{}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

// FindByID retrieves a comment by its ID
func (r *CommentRepository) FindByID(id string) (models.Comment, error) {
	var comment models.Comment
	result := database.DB.First(&comment, "id = ?", id)
	return comment, result.Error
}

// Create inserts a new comment into the database
func (r *CommentRepository) Create(comment models.Comment) (models.Comment, error) {
	result := database.DB.Create(&comment)
	return comment, result.Error
}

// Update modifies an existing comment
func (r *CommentRepository) Update(comment models.Comment) error {
	return database.DB.Save(&comment).Error
}

// Delete removes a comment from the database
func (r *CommentRepository) Delete(id string) error {
	return database.DB.Delete(&models.Comment{}, "id = ?", id).Error
}

// ListByTask retrieves a task's comments with authors, oldest first
func (r *CommentRepository) ListByTask(taskID string) ([]models.Comment, error) {
	var comments []models.Comment
	result := database.DB.Preload("Author").
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&comments)
	return comments, result.Error
}

// CountByTask counts the comments on a task
func (r *CommentRepository) CountByTask(taskID string) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Comment{}).
		Where("task_id = ?", taskID).
		Count(&count).Error
	return count, err
}

// Search retrieves comments whose content matches the query, newest first.
// Results are always limited to projects the caller is a member of; an
// optional project ID narrows further.
func (r *CommentRepository) Search(query, callerID, projectID string, limit int) ([]models.Comment, error) {
	pattern := "%" + query + "%"
	db := database.DB.Model(&models.Comment{}).Preload("Author").
		Select("comments.*").
		Joins("JOIN tasks ON tasks.id = comments.task_id").
		Where("lower(comments.content) LIKE lower(?)", pattern).
		Where("EXISTS (SELECT 1 FROM memberships WHERE memberships.project_id = tasks.project_id AND memberships.user_id = ?)", callerID)

	if projectID != "" {
		db = db.Where("tasks.project_id = ?", projectID)
	}

	var comments []models.Comment
	result := db.Order("comments.created_at desc").Limit(limit).Find(&comments)
	return comments, result.Error
}
