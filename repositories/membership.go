package repositories

import (
	"errors"

	"github.com/taskdeck-simple/database"
	"github.com/taskdeck-simple/models"
	"gorm.io/gorm"
)

// MembershipRepository handles database operations for project memberships
type MembershipRepository struct{}

// NewMembershipRepository creates a new membership repository instance
func NewMembershipRepository() *MembershipRepository {
	return &MembershipRepository{}
}

// FindRole returns the role a user holds in a project, with found=false
// when no membership row exists
func (r *MembershipRepository) FindRole(projectID, userID string) (models.ProjectRole, bool, error) {
	var membership models.Membership
	result := database.DB.First(&membership, "project_id = ? AND user_id = ?", projectID, userID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if result.Error != nil {
		return "", false, result.Error
	}
	return membership.Role, true, nil
}

// Exists checks whether a membership row exists for (project, user)
func (r *MembershipRepository) Exists(projectID, userID string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Membership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a new membership row
func (r *MembershipRepository) Create(membership models.Membership) error {
	return database.DB.Create(&membership).Error
}

// ListByProject retrieves all memberships of a project with their users
func (r *MembershipRepository) ListByProject(projectID string) ([]models.Membership, error) {
	var memberships []models.Membership
	result := database.DB.Preload("User").
		Where("project_id = ?", projectID).
		Order("joined_at asc").
		Find(&memberships)
	return memberships, result.Error
}

// Delete removes a user's membership together with their task assignments
// inside the project, in one transaction
func (r *MembershipRepository) Delete(projectID, userID string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"user_id = ? AND task_id IN (?)",
			userID,
			tx.Model(&models.Task{}).Select("id").Where("project_id = ?", projectID),
		).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		return tx.Where("project_id = ? AND user_id = ?", projectID, userID).
			Delete(&models.Membership{}).Error
	})
}
