package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/taskdeck-simple/apperr"
	"github.com/taskdeck-simple/database"
	"github.com/taskdeck-simple/dto"
	"github.com/taskdeck-simple/models"
)

func TestCreateTaskCollectsAllViolations(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	project := createTestProject(t, admin.ID, "Website")

	_, err := NewTaskService().Create(project.ID, admin.ID, dto.CreateTaskRequest{
		Title:   "   ",
		DueDate: "next tuesday",
	})

	var validationErr *apperr.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Create = %v, want ValidationError", err)
	}
	if len(validationErr.Violations) != 2 {
		t.Errorf("got %d violations %v, want 2 (title and due date)", len(validationErr.Violations), validationErr.Violations)
	}
}

func TestCreateTaskTitleBounds(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	project := createTestProject(t, admin.ID, "Website")
	svc := NewTaskService()

	if _, err := svc.Create(project.ID, admin.ID, dto.CreateTaskRequest{Title: strings.Repeat("x", 101)}); !apperr.IsValidation(err) {
		t.Errorf("101-char title: err = %v, want ValidationError", err)
	}

	task, err := svc.Create(project.ID, admin.ID, dto.CreateTaskRequest{Title: "  Draft proposal  ", DueDate: "2026-09-01"})
	if err != nil {
		t.Fatalf("valid create failed: %v", err)
	}
	if task.Title != "Draft proposal" {
		t.Errorf("title = %q, want trimmed %q", task.Title, "Draft proposal")
	}
	if task.Status != models.StatusToDo {
		t.Errorf("initial status = %q, want To Do", task.Status)
	}
	if task.DueDate == nil || task.DueDate.Format("2006-01-02") != "2026-09-01" {
		t.Errorf("due date = %v, want 2026-09-01", task.DueDate)
	}
}

func TestCreateTaskTitleCountsCharacters(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	project := createTestProject(t, admin.ID, "Website")
	svc := NewTaskService()

	// 60 characters but 120 bytes; the limit is on characters
	title := strings.Repeat("é", 60)
	task, err := svc.Create(project.ID, admin.ID, dto.CreateTaskRequest{Title: title})
	if err != nil {
		t.Fatalf("60-char multibyte title rejected: %v", err)
	}
	if task.Title != title {
		t.Errorf("title = %q, want %q", task.Title, title)
	}

	if _, err := svc.Create(project.ID, admin.ID, dto.CreateTaskRequest{Title: strings.Repeat("é", 101)}); !apperr.IsValidation(err) {
		t.Errorf("101-char multibyte title: err = %v, want ValidationError", err)
	}
}

func TestCreateTaskOnArchivedProject(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	project := createTestProject(t, admin.ID, "Website")
	if _, err := NewProjectService().SetArchived(project.ID, admin.ID, true); err != nil {
		t.Fatalf("archive failed: %v", err)
	}

	_, err := NewTaskService().Create(project.ID, admin.ID, dto.CreateTaskRequest{Title: "Too late"})
	if !apperr.IsValidation(err) {
		t.Errorf("create on archived project: err = %v, want ValidationError", err)
	}
}

func TestCreateTaskByOutsiderDenied(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	outsider := createTestUser(t, "outsider@example.com")
	project := createTestProject(t, admin.ID, "Website")

	_, err := NewTaskService().Create(project.ID, outsider.ID, dto.CreateTaskRequest{Title: "Sneaky"})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("outsider create: err = %v, want ErrForbidden", err)
	}
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	assignee := createTestUser(t, "assignee@example.com")
	project := createTestProject(t, admin.ID, "Website")
	addTestMember(t, project.ID, assignee.ID, models.RoleMember)
	task := createTestTask(t, project.ID, admin.ID, "Draft proposal")
	assignTestUser(t, task.ID, admin.ID, assignee.ID)

	before := notificationsFor(t, assignee.ID)

	updated, err := NewTaskService().UpdateStatus(task.ID, admin.ID, models.StatusToDo)
	if err != nil {
		t.Fatalf("same-status update failed: %v", err)
	}
	if updated.Status != models.StatusToDo {
		t.Errorf("status = %q, want unchanged To Do", updated.Status)
	}
	after := notificationsFor(t, assignee.ID)
	if len(after) != len(before) {
		t.Errorf("no-op status change dispatched %d notifications", len(after)-len(before))
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	project := createTestProject(t, admin.ID, "Website")
	svc := NewTaskService()

	transitions := []struct {
		from models.TaskStatus
		to   models.TaskStatus
	}{
		{models.StatusToDo, models.StatusInProgress},
		{models.StatusToDo, models.StatusDone},
		{models.StatusInProgress, models.StatusToDo},
		{models.StatusInProgress, models.StatusDone},
		{models.StatusDone, models.StatusToDo},
		{models.StatusDone, models.StatusInProgress},
	}

	for _, tr := range transitions {
		task := createTestTask(t, project.ID, admin.ID, "T "+string(tr.from)+"->"+string(tr.to))
		if tr.from != models.StatusToDo {
			if err := database.DB.Model(&models.Task{}).Where("id = ?", task.ID).Update("status", tr.from).Error; err != nil {
				t.Fatalf("failed to seed status: %v", err)
			}
		}
		updated, err := svc.UpdateStatus(task.ID, admin.ID, tr.to)
		if err != nil {
			t.Errorf("%s -> %s failed: %v", tr.from, tr.to, err)
			continue
		}
		if updated.Status != tr.to {
			t.Errorf("%s -> %s left status %q", tr.from, tr.to, updated.Status)
		}
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	project := createTestProject(t, admin.ID, "Website")
	task := createTestTask(t, project.ID, admin.ID, "Draft proposal")

	_, err := NewTaskService().UpdateStatus(task.ID, admin.ID, models.TaskStatus("Blocked"))

	var transitionErr *apperr.InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("unknown status: err = %v, want InvalidTransitionError", err)
	}
	if transitionErr.From != "To Do" || transitionErr.To != "Blocked" {
		t.Errorf("transition error names (%q, %q), want (To Do, Blocked)", transitionErr.From, transitionErr.To)
	}
}

func TestUpdateStatusNotifiesEveryAssignee(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	first := createTestUser(t, "first@example.com")
	second := createTestUser(t, "second@example.com")
	project := createTestProject(t, admin.ID, "Website")
	addTestMember(t, project.ID, first.ID, models.RoleMember)
	addTestMember(t, project.ID, second.ID, models.RoleMember)
	task := createTestTask(t, project.ID, admin.ID, "Draft proposal")
	assignTestUser(t, task.ID, admin.ID, first.ID)
	assignTestUser(t, task.ID, admin.ID, second.ID)

	if _, err := NewTaskService().UpdateStatus(task.ID, admin.ID, models.StatusInProgress); err != nil {
		t.Fatalf("status update failed: %v", err)
	}

	for _, u := range []models.User{first, second} {
		updates := 0
		for _, n := range notificationsFor(t, u.ID) {
			if n.Type == models.NotificationTaskUpdated {
				updates++
			}
		}
		if updates != 1 {
			t.Errorf("assignee %s got %d task_updated notifications, want exactly 1", u.Email, updates)
		}
	}
	// The admin changed the status but is not assigned, so hears nothing
	for _, n := range notificationsFor(t, admin.ID) {
		if n.Type == models.NotificationTaskUpdated {
			t.Error("unassigned actor received a task_updated notification")
		}
	}
}

// Pins the preserved reference behavior: the actor is not excluded from
// status-change notifications when they are themselves assigned.
func TestUpdateStatusNotifiesActorWhenAssigned(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	project := createTestProject(t, admin.ID, "Website")
	task := createTestTask(t, project.ID, admin.ID, "Draft proposal")
	assignTestUser(t, task.ID, admin.ID, admin.ID)

	if _, err := NewTaskService().UpdateStatus(task.ID, admin.ID, models.StatusDone); err != nil {
		t.Fatalf("status update failed: %v", err)
	}

	updates := 0
	for _, n := range notificationsFor(t, admin.ID) {
		if n.Type == models.NotificationTaskUpdated {
			updates++
		}
	}
	if updates != 1 {
		t.Errorf("self-assigned actor got %d task_updated notifications, want 1", updates)
	}
}

func TestAssignNonMemberRejected(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	outsider := createTestUser(t, "outsider@example.com")
	project := createTestProject(t, admin.ID, "Website")
	task := createTestTask(t, project.ID, admin.ID, "Draft proposal")

	err := NewTaskService().Assign(task.ID, admin.ID, outsider.ID)
	if !apperr.IsValidation(err) {
		t.Fatalf("assign outsider: err = %v, want ValidationError", err)
	}

	var count int64
	database.DB.Model(&models.TaskAssignment{}).Where("task_id = ?", task.ID).Count(&count)
	if count != 0 {
		t.Errorf("assignment row created for non-member, count = %d", count)
	}
}

func TestAssignDuplicateIsConflict(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	project := createTestProject(t, admin.ID, "Website")
	task := createTestTask(t, project.ID, admin.ID, "Draft proposal")
	assignTestUser(t, task.ID, admin.ID, admin.ID)

	if err := NewTaskService().Assign(task.ID, admin.ID, admin.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("duplicate assign: err = %v, want ErrConflict", err)
	}
}

func TestAssignManyReportsPartialSuccess(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	member := createTestUser(t, "member@example.com")
	outsider := createTestUser(t, "outsider@example.com")
	project := createTestProject(t, admin.ID, "Website")
	addTestMember(t, project.ID, member.ID, models.RoleMember)
	task := createTestTask(t, project.ID, admin.ID, "Draft proposal")
	assignTestUser(t, task.ID, admin.ID, admin.ID)

	result, err := NewTaskService().AssignMany(task.ID, admin.ID, []string{member.ID, outsider.ID, admin.ID})
	if err != nil {
		t.Fatalf("AssignMany failed: %v", err)
	}

	if result.Succeeded != 1 {
		t.Errorf("succeeded = %d, want 1", result.Succeeded)
	}
	if len(result.Failures) != 2 {
		t.Fatalf("failures = %v, want 2 entries", result.Failures)
	}
	reasons := map[string]string{}
	for _, f := range result.Failures {
		reasons[f.UserID] = f.Reason
	}
	if reasons[outsider.ID] != "not a project member" {
		t.Errorf("outsider reason = %q", reasons[outsider.ID])
	}
	if reasons[admin.ID] != "already assigned" {
		t.Errorf("duplicate reason = %q", reasons[admin.ID])
	}
}

func TestUnassignIsIdempotent(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	project := createTestProject(t, admin.ID, "Website")
	task := createTestTask(t, project.ID, admin.ID, "Draft proposal")
	assignTestUser(t, task.ID, admin.ID, admin.ID)

	svc := NewTaskService()
	if err := svc.Unassign(task.ID, admin.ID, admin.ID); err != nil {
		t.Fatalf("first unassign failed: %v", err)
	}
	if err := svc.Unassign(task.ID, admin.ID, admin.ID); err != nil {
		t.Errorf("second unassign failed: %v", err)
	}
}

func TestDeleteTaskCascades(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	project := createTestProject(t, admin.ID, "Website")
	task := createTestTask(t, project.ID, admin.ID, "Draft proposal")
	assignTestUser(t, task.ID, admin.ID, admin.ID)
	if _, err := NewCommentService().Create(task.ID, admin.ID, "First comment"); err != nil {
		t.Fatalf("comment failed: %v", err)
	}

	if err := NewTaskService().Delete(task.ID, admin.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var assignments, comments int64
	database.DB.Model(&models.TaskAssignment{}).Where("task_id = ?", task.ID).Count(&assignments)
	database.DB.Model(&models.Comment{}).Where("task_id = ?", task.ID).Count(&comments)
	if assignments != 0 || comments != 0 {
		t.Errorf("after delete: %d assignments, %d comments remain", assignments, comments)
	}

	// Notifications referencing the task must still read back cleanly
	if _, err := NewNotificationService().ListForUser(admin.ID, 10); err != nil {
		t.Errorf("notification read after task delete failed: %v", err)
	}
}

func TestDeleteTaskByPlainMemberDenied(t *testing.T) {
	setupTestDB(t)

	admin := createTestUser(t, "admin@example.com")
	member := createTestUser(t, "member@example.com")
	project := createTestProject(t, admin.ID, "Website")
	addTestMember(t, project.ID, member.ID, models.RoleMember)
	task := createTestTask(t, project.ID, admin.ID, "Draft proposal")

	if err := NewTaskService().Delete(task.ID, member.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("member delete of admin's task: err = %v, want ErrForbidden", err)
	}
}

// The §8-style end-to-end flow: project, task, assignment, status change,
// comment, with notification counts checked at each step.
func TestTaskCollaborationFlow(t *testing.T) {
	setupTestDB(t)

	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")

	project := createTestProject(t, alice.ID, "Launch plan")
	addTestMember(t, project.ID, bob.ID, models.RoleMember)

	tasks := NewTaskService()
	task, err := tasks.Create(project.ID, alice.ID, dto.CreateTaskRequest{Title: "Draft proposal"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if task.Status != models.StatusToDo {
		t.Fatalf("initial status = %q", task.Status)
	}

	if err := tasks.Assign(task.ID, alice.ID, bob.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	updated, err := tasks.UpdateStatus(task.ID, alice.ID, models.StatusInProgress)
	if err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Errorf("status = %q, want In Progress", updated.Status)
	}

	bobUpdates := 0
	for _, n := range notificationsFor(t, bob.ID) {
		if n.Type == models.NotificationTaskUpdated {
			bobUpdates++
		}
	}
	if bobUpdates != 1 {
		t.Errorf("bob got %d task_updated notifications, want 1", bobUpdates)
	}
	for _, n := range notificationsFor(t, alice.ID) {
		if n.Type == models.NotificationTaskUpdated {
			t.Error("alice is not assigned and must not get task_updated")
		}
	}

	// Bob comments; alice is creator but not assignee, so nobody is notified
	if _, err := NewCommentService().Create(task.ID, bob.ID, "Looks good"); err != nil {
		t.Fatalf("comment failed: %v", err)
	}
	for _, n := range notificationsFor(t, alice.ID) {
		if n.Type == models.NotificationCommentAdded {
			t.Error("alice is not an assignee and must not get comment_added")
		}
	}
	for _, n := range notificationsFor(t, bob.ID) {
		if n.Type == models.NotificationCommentAdded {
			t.Error("comment author must not be notified of their own comment")
		}
	}
}
