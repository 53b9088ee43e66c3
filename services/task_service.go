package services

import (
	"errors"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"github.com/taskdeck-simple/apperr"
	"github.com/taskdeck-simple/dto"
	"github.com/taskdeck-simple/models"
	"github.com/taskdeck-simple/repositories"
	"github.com/taskdeck-simple/utils"
	"gorm.io/gorm"
)

// dueDateLayout is the calendar-date format accepted on task input.
const dueDateLayout = "2006-01-02"

// allowedTransitions is the task status graph. Every distinct pair among
// the three states is reachable — reopening a Done task is permitted, there
// is no terminal state. Identity transitions are handled separately as
// no-ops before this table is consulted.
var allowedTransitions = map[models.TaskStatus][]models.TaskStatus{
	models.StatusToDo:       {models.StatusInProgress, models.StatusDone},
	models.StatusInProgress: {models.StatusToDo, models.StatusDone},
	models.StatusDone:       {models.StatusToDo, models.StatusInProgress},
}

func canTransition(from, to models.TaskStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TaskService owns the task lifecycle: creation, field updates, the status
// state machine, and assignment. All writes are permission-checked first
// and notify affected assignees after the mutation lands.
type TaskService struct {
	taskRepo       *repositories.TaskRepository
	projectRepo    *repositories.ProjectRepository
	assignmentRepo *repositories.AssignmentRepository
	userRepo       *repositories.UserRepository
	permissions    *PermissionService
	notifications  *NotificationService
}

// NewTaskService creates a new task service instance
func NewTaskService() *TaskService {
	return &TaskService{
		taskRepo:       repositories.NewTaskRepository(),
		projectRepo:    repositories.NewProjectRepository(),
		assignmentRepo: repositories.NewAssignmentRepository(),
		userRepo:       repositories.NewUserRepository(),
		permissions:    NewPermissionService(),
		notifications:  NewNotificationService(),
	}
}

// Create validates and creates a task in a project with initial status To Do
func (s *TaskService) Create(projectID, callerID string, req dto.CreateTaskRequest) (models.Task, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return models.Task{}, asNotFound(err)
	}

	if !s.permissions.CanCreateTask(projectID, callerID) {
		return models.Task{}, apperr.ErrForbidden
	}

	var violations []string

	title := utils.TrimContent(req.Title)
	if n := utf8.RuneCountInString(title); n < 1 || n > 100 {
		violations = append(violations, "title must be between 1 and 100 characters")
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(dueDateLayout, req.DueDate)
		if err != nil {
			violations = append(violations, "due date must be a calendar date in YYYY-MM-DD format")
		} else {
			dueDate = &parsed
		}
	}

	if project.Archived {
		violations = append(violations, "project is archived")
	}

	if len(violations) > 0 {
		return models.Task{}, apperr.NewValidation(violations...)
	}

	task := models.Task{
		ProjectID:   projectID,
		Title:       title,
		Description: req.Description,
		Status:      models.StatusToDo,
		DueDate:     dueDate,
		CreatedBy:   callerID,
	}
	return s.taskRepo.Create(task)
}

// Update applies a partial update to a task's fields. Unspecified fields
// keep their prior values.
func (s *TaskService) Update(taskID, callerID string, req dto.UpdateTaskRequest) (models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return models.Task{}, asNotFound(err)
	}

	if !s.permissions.CanEditTask(task, callerID) {
		return models.Task{}, apperr.ErrForbidden
	}

	var violations []string

	if req.Title != nil {
		title := utils.TrimContent(*req.Title)
		if n := utf8.RuneCountInString(title); n < 1 || n > 100 {
			violations = append(violations, "title must be between 1 and 100 characters")
		} else {
			task.Title = title
		}
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			parsed, err := time.Parse(dueDateLayout, *req.DueDate)
			if err != nil {
				violations = append(violations, "due date must be a calendar date in YYYY-MM-DD format")
			} else {
				task.DueDate = &parsed
			}
		}
	}
	if req.Description != nil {
		task.Description = *req.Description
	}

	if len(violations) > 0 {
		return models.Task{}, apperr.NewValidation(violations...)
	}

	if err := s.taskRepo.Update(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// UpdateStatus moves a task through the status state machine. A request for
// the current status succeeds as a no-op without notifying anyone; a real
// transition notifies every current assignee, the acting user included when
// they are assigned themselves.
func (s *TaskService) UpdateStatus(taskID, callerID string, newStatus models.TaskStatus) (models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return models.Task{}, asNotFound(err)
	}

	if !s.permissions.CanUpdateStatus(task.ProjectID, callerID) {
		return models.Task{}, apperr.ErrForbidden
	}

	if newStatus == task.Status {
		return task, nil
	}

	if !newStatus.Valid() || !canTransition(task.Status, newStatus) {
		return models.Task{}, &apperr.InvalidTransitionError{
			From: string(task.Status),
			To:   string(newStatus),
		}
	}

	if err := s.taskRepo.UpdateStatus(taskID, newStatus); err != nil {
		return models.Task{}, err
	}
	task.Status = newStatus
	task.UpdatedAt = time.Now()

	s.notifyAssignees(task, callerID, models.NotificationTaskUpdated,
		fmt.Sprintf("Task %q moved to %s", task.Title, newStatus))

	return task, nil
}

// Assign adds one user to a task. The target must hold membership in the
// task's project; assigning an already-assigned user is a conflict.
func (s *TaskService) Assign(taskID, callerID, userID string) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return asNotFound(err)
	}

	if !s.permissions.IsMember(task.ProjectID, callerID) {
		return apperr.ErrForbidden
	}
	if !s.permissions.IsMember(task.ProjectID, userID) {
		return apperr.NewValidation("user is not a member of the task's project")
	}

	exists, err := s.assignmentRepo.Exists(taskID, userID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.ErrConflict
	}

	assignment := models.TaskAssignment{
		TaskID:     taskID,
		UserID:     userID,
		AssignedAt: time.Now(),
	}
	if err := s.assignmentRepo.Create(assignment); err != nil {
		return err
	}

	s.dispatch(userID, task, callerID, models.NotificationTaskAssigned,
		fmt.Sprintf("You were assigned to task %q", task.Title))
	return nil
}

// AssignMany assigns a batch of users, reporting partial success instead of
// aborting on the first bad target
func (s *TaskService) AssignMany(taskID, callerID string, userIDs []string) (dto.AssignManyResult, error) {
	result := dto.AssignManyResult{Failures: []dto.AssignFailure{}}

	// Task existence and caller rights fail the whole batch up front
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return result, asNotFound(err)
	}
	if !s.permissions.IsMember(task.ProjectID, callerID) {
		return result, apperr.ErrForbidden
	}

	for _, userID := range userIDs {
		if err := s.Assign(taskID, callerID, userID); err != nil {
			result.Failures = append(result.Failures, dto.AssignFailure{
				UserID: userID,
				Reason: assignFailureReason(err),
			})
			continue
		}
		result.Succeeded++
	}
	return result, nil
}

func assignFailureReason(err error) string {
	switch {
	case errors.Is(err, apperr.ErrConflict):
		return "already assigned"
	case apperr.IsValidation(err):
		return "not a project member"
	case errors.Is(err, apperr.ErrForbidden):
		return "access denied"
	default:
		return "assignment failed"
	}
}

// Unassign removes a user from a task. Removing an absent assignment
// succeeds silently.
func (s *TaskService) Unassign(taskID, callerID, userID string) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return asNotFound(err)
	}
	if !s.permissions.IsMember(task.ProjectID, callerID) {
		return apperr.ErrForbidden
	}
	return s.assignmentRepo.Delete(taskID, userID)
}

// Delete removes a task with its assignments and comments
func (s *TaskService) Delete(taskID, callerID string) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return asNotFound(err)
	}
	if !s.permissions.CanEditTask(task, callerID) {
		return apperr.ErrForbidden
	}
	return s.taskRepo.Delete(taskID)
}

// Get retrieves a task with its current assignees
func (s *TaskService) Get(taskID, callerID string) (dto.TaskDetailResponse, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return dto.TaskDetailResponse{}, asNotFound(err)
	}
	if !s.permissions.CanViewProject(task.ProjectID, callerID) {
		return dto.TaskDetailResponse{}, apperr.ErrForbidden
	}

	assignments, err := s.assignmentRepo.ListByTask(taskID)
	if err != nil {
		return dto.TaskDetailResponse{}, err
	}

	detail := dto.TaskDetailResponse{Task: task, Assignees: []dto.AssigneeItem{}}
	for _, a := range assignments {
		detail.Assignees = append(detail.Assignees, dto.AssigneeItem{
			UserID:      a.UserID,
			DisplayName: a.User.DisplayName(),
		})
	}
	return detail, nil
}

// List retrieves a project's tasks under the given filters, annotated with
// creator names and assignee lists. An empty filter returns the full
// project list in the same ordering.
func (s *TaskService) List(projectID, callerID string, filter dto.TaskFilter) ([]dto.TaskListItem, error) {
	if !s.permissions.CanViewProject(projectID, callerID) {
		return nil, apperr.ErrForbidden
	}

	if filter.Status != "" && !models.TaskStatus(filter.Status).Valid() {
		return nil, apperr.NewValidation("unknown status filter")
	}

	tasks, err := s.taskRepo.FindWithFilter(projectID, filter)
	if err != nil {
		return nil, err
	}

	taskIDs := make([]string, 0, len(tasks))
	creatorIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
		creatorIDs = append(creatorIDs, t.CreatedBy)
	}

	creators, err := s.userRepo.FindByIDs(creatorIDs)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.ListByTasks(taskIDs)
	if err != nil {
		return nil, err
	}

	assigneesByTask := make(map[string][]dto.AssigneeItem)
	for _, a := range assignments {
		assigneesByTask[a.TaskID] = append(assigneesByTask[a.TaskID], dto.AssigneeItem{
			UserID:      a.UserID,
			DisplayName: a.User.DisplayName(),
		})
	}

	items := make([]dto.TaskListItem, 0, len(tasks))
	for _, t := range tasks {
		creatorName := ""
		if creator, ok := creators[t.CreatedBy]; ok {
			creatorName = creator.DisplayName()
		}
		assignees := assigneesByTask[t.ID]
		if assignees == nil {
			assignees = []dto.AssigneeItem{}
		}
		items = append(items, dto.TaskListItem{
			ID:          t.ID,
			ProjectID:   t.ProjectID,
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			DueDate:     t.DueDate,
			CreatedBy:   t.CreatedBy,
			CreatorName: creatorName,
			Assignees:   assignees,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	return items, nil
}

// notifyAssignees dispatches one notification per current assignee of the
// task. Dispatch failures are logged and swallowed: notifications are a
// side channel and never fail the mutation that triggered them.
func (s *TaskService) notifyAssignees(task models.Task, actorID string, ntype models.NotificationType, message string) {
	assigneeIDs, err := s.assignmentRepo.ListUserIDsByTask(task.ID)
	if err != nil {
		log.Printf("Failed to load assignees for notification on task %s: %v", task.ID, err)
		return
	}
	for _, recipientID := range assigneeIDs {
		s.dispatch(recipientID, task, actorID, ntype, message)
	}
}

func (s *TaskService) dispatch(recipientID string, task models.Task, actorID string, ntype models.NotificationType, message string) {
	_, err := s.notifications.Dispatch(recipientID, ntype, message, &task.ID, &task.ProjectID, &actorID)
	if err != nil {
		log.Printf("Failed to dispatch %s notification to %s: %v", ntype, recipientID, err)
	}
}

// asNotFound maps a gorm missing-record error onto the domain taxonomy
func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return err
}
