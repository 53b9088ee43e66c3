package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/taskdeck-simple/database"
	"github.com/taskdeck-simple/dto"
	"github.com/taskdeck-simple/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global handle at a fresh sqlite database in the
// test's temp dir and migrates the full schema.
func setupTestDB(t *testing.T) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db
}

func createTestUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{Email: email, Password: "hashed"}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

// createTestProject creates a project through the service so the creator's
// admin membership comes with it.
func createTestProject(t *testing.T, creatorID, title string) models.Project {
	t.Helper()
	project, err := NewProjectService().Create(creatorID, dto.CreateProjectRequest{Title: title})
	if err != nil {
		t.Fatalf("failed to create project %s: %v", title, err)
	}
	return project
}

func addTestMember(t *testing.T, projectID, userID string, role models.ProjectRole) {
	t.Helper()
	membership := models.Membership{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
	if err := database.DB.Create(&membership).Error; err != nil {
		t.Fatalf("failed to add member %s: %v", userID, err)
	}
}

func createTestTask(t *testing.T, projectID, creatorID, title string) models.Task {
	t.Helper()
	task, err := NewTaskService().Create(projectID, creatorID, dto.CreateTaskRequest{Title: title})
	if err != nil {
		t.Fatalf("failed to create task %s: %v", title, err)
	}
	return task
}

func assignTestUser(t *testing.T, taskID, callerID, userID string) {
	t.Helper()
	if err := NewTaskService().Assign(taskID, callerID, userID); err != nil {
		t.Fatalf("failed to assign %s to task: %v", userID, err)
	}
}

func notificationsFor(t *testing.T, userID string) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	if err := database.DB.Where("recipient_id = ?", userID).Order("created_at asc").Find(&notifications).Error; err != nil {
		t.Fatalf("failed to load notifications for %s: %v", userID, err)
	}
	return notifications
}
