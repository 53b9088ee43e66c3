package repositories

import (
	"fmt"
	"time"

	"github.com/taskdeck-simple/database"
	"github.com/taskdeck-simple/dto"
	"github.com/taskdeck-simple/models"
	"gorm.io/gorm"
)

// filterResultCap bounds every task listing query.
const filterResultCap = 100

// statusOrderExpr ranks listing results by lifecycle state, To Do first.
var statusOrderExpr = fmt.Sprintf(
	"CASE status WHEN '%s' THEN %d WHEN '%s' THEN %d WHEN '%s' THEN %d ELSE 3 END",
	models.StatusToDo, models.StatusToDo.Priority(),
	models.StatusInProgress, models.StatusInProgress.Priority(),
	models.StatusDone, models.StatusDone.Priority(),
)

// TaskRepository handles database operations for tasks
type TaskRepository struct{}

// NewTaskRepository creates a new task repository instance
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// FindByID retrieves a task by its ID
func (r *TaskRepository) FindByID(id string) (models.Task, error) {
	var task models.Task
	result := database.DB.First(&task, "id = ?", id)
	return task, result.Error
}

// Create inserts a new task into the database
func (r *TaskRepository) Create(task models.Task) (models.Task, error) {
	result := database.DB.Create(&task)
	return task, result.Error
}

// Update modifies an existing task
func (r *TaskRepository) Update(task models.Task) error {
	return database.DB.Save(&task).Error
}

// UpdateStatus persists a new status and touches updated_at
func (r *TaskRepository) UpdateStatus(id string, status models.TaskStatus) error {
	return database.DB.Model(&models.Task{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// Delete removes a task and cascades its assignments and comments in one
// transaction
func (r *TaskRepository) Delete(id string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, "id = ?", id).Error
	})
}

// FindWithFilter retrieves the tasks of a project matching every provided
// filter, capped and ordered by status priority then recency of update.
// Due date bounds are inclusive calendar dates.
func (r *TaskRepository) FindWithFilter(projectID string, filter dto.TaskFilter) ([]models.Task, error) {
	db := database.DB.Model(&models.Task{}).Where("project_id = ?", projectID)

	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if filter.Assignee == "unassigned" {
		db = db.Where("NOT EXISTS (SELECT 1 FROM task_assignments WHERE task_assignments.task_id = tasks.id)")
	} else if filter.Assignee != "" {
		db = db.Where("EXISTS (SELECT 1 FROM task_assignments WHERE task_assignments.task_id = tasks.id AND task_assignments.user_id = ?)", filter.Assignee)
	}

	if filter.DueStart != "" {
		start, err := time.Parse("2006-01-02", filter.DueStart)
		if err == nil {
			db = db.Where("due_date >= ?", start)
		}
	}
	if filter.DueEnd != "" {
		end, err := time.Parse("2006-01-02", filter.DueEnd)
		if err == nil {
			// Inclusive of the entire end day
			db = db.Where("due_date < ?", end.AddDate(0, 0, 1))
		}
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where("(lower(title) LIKE lower(?) OR lower(description) LIKE lower(?))", pattern, pattern)
	}

	var tasks []models.Task
	result := db.
		Order(statusOrderExpr).
		Order("updated_at desc").
		Limit(filterResultCap).
		Find(&tasks)
	return tasks, result.Error
}
