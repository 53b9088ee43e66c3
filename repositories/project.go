package repositories

import (
	"time"

	"github.com/taskdeck-simple/database"
	"github.com/taskdeck-simple/models"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct{}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

// FindByID retrieves a project by its ID
func (r *ProjectRepository) FindByID(id string) (models.Project, error) {
	var project models.Project
	result := database.DB.First(&project, "id = ?", id)
	return project, result.Error
}

// CreateWithAdmin inserts a project and its creator's admin membership in a
// single transaction; the two rows never exist without each other
func (r *ProjectRepository) CreateWithAdmin(project models.Project) (models.Project, error) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		membership := models.Membership{
			ProjectID: project.ID,
			UserID:    project.CreatorID,
			Role:      models.RoleAdmin,
			JoinedAt:  time.Now(),
		}
		return tx.Create(&membership).Error
	})
	return project, err
}

// ListForUser retrieves all projects the user is a member of
func (r *ProjectRepository) ListForUser(userID string) ([]models.Project, error) {
	var projects []models.Project
	result := database.DB.
		Select("projects.*").
		Joins("JOIN memberships ON memberships.project_id = projects.id").
		Where("memberships.user_id = ?", userID).
		Order("projects.created_at desc").
		Find(&projects)
	return projects, result.Error
}

// Update modifies an existing project
func (r *ProjectRepository) Update(project models.Project) error {
	return database.DB.Save(&project).Error
}

// Delete removes a project and everything scoped to it in one transaction
func (r *ProjectRepository) Delete(id string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)

		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Membership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}
