package services

import (
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/taskdeck-simple/apperr"
	"github.com/taskdeck-simple/dto"
	"github.com/taskdeck-simple/models"
	"github.com/taskdeck-simple/repositories"
	"github.com/taskdeck-simple/utils"
)

const (
	commentMinLength = 2
	commentMaxLength = 1000

	// A single character repeated this many times in a row marks spam.
	spamRunLength = 11

	commentSearchLimitCap = 50
)

// CommentService owns comment threads scoped to tasks. Content is sanitized
// server-side on every write; update and delete are author-only with no
// admin override.
type CommentService struct {
	commentRepo    *repositories.CommentRepository
	taskRepo       *repositories.TaskRepository
	assignmentRepo *repositories.AssignmentRepository
	permissions    *PermissionService
	notifications  *NotificationService
}

// NewCommentService creates a new comment service instance
func NewCommentService() *CommentService {
	return &CommentService{
		commentRepo:    repositories.NewCommentRepository(),
		taskRepo:       repositories.NewTaskRepository(),
		assignmentRepo: repositories.NewAssignmentRepository(),
		permissions:    NewPermissionService(),
		notifications:  NewNotificationService(),
	}
}

// validateContent sanitizes and validates a comment body, returning the
// content that may be persisted
func validateContent(content string) (string, error) {
	sanitized := utils.TrimContent(utils.SanitizeCommentContent(content))

	length := utf8.RuneCountInString(sanitized)
	if length < commentMinLength || length > commentMaxLength {
		return "", apperr.NewValidation("comment must be between 2 and 1000 characters")
	}
	if utils.HasRepeatedRun(sanitized, spamRunLength) {
		return "", apperr.NewValidation("comment looks like spam")
	}
	return sanitized, nil
}

// Create adds a comment to a task and notifies the task's assignees,
// except the author commenting on their own assignment
func (s *CommentService) Create(taskID, authorID, content string) (models.Comment, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return models.Comment{}, asNotFound(err)
	}

	if !s.permissions.IsMember(task.ProjectID, authorID) {
		return models.Comment{}, apperr.ErrForbidden
	}

	sanitized, err := validateContent(content)
	if err != nil {
		return models.Comment{}, err
	}

	comment, err := s.commentRepo.Create(models.Comment{
		TaskID:   taskID,
		AuthorID: authorID,
		Content:  sanitized,
	})
	if err != nil {
		return models.Comment{}, err
	}

	s.notifyAssigneesExcept(task, authorID,
		fmt.Sprintf("New comment on task %q", task.Title))

	return comment, nil
}

// Update edits a comment's content. Only the author may do this; a project
// admin editing someone else's comment is denied like anyone else.
func (s *CommentService) Update(commentID, callerID, content string) (models.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		return models.Comment{}, asNotFound(err)
	}

	if comment.AuthorID != callerID {
		return models.Comment{}, apperr.ErrForbidden
	}

	sanitized, err := validateContent(content)
	if err != nil {
		return models.Comment{}, err
	}

	comment.Content = sanitized
	if err := s.commentRepo.Update(comment); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// Delete removes a comment; author-only, same as Update
func (s *CommentService) Delete(commentID, callerID string) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		return asNotFound(err)
	}
	if comment.AuthorID != callerID {
		return apperr.ErrForbidden
	}
	return s.commentRepo.Delete(commentID)
}

// ListByTask retrieves a task's comments in chronological order
func (s *CommentService) ListByTask(taskID, callerID string) ([]dto.CommentResponse, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !s.permissions.CanViewProject(task.ProjectID, callerID) {
		return nil, apperr.ErrForbidden
	}

	comments, err := s.commentRepo.ListByTask(taskID)
	if err != nil {
		return nil, err
	}
	return toCommentResponses(comments), nil
}

// CountByTask counts the comments on a task
func (s *CommentService) CountByTask(taskID, callerID string) (int64, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return 0, asNotFound(err)
	}
	if !s.permissions.CanViewProject(task.ProjectID, callerID) {
		return 0, apperr.ErrForbidden
	}
	return s.commentRepo.CountByTask(taskID)
}

// Search finds comments matching a query across the caller's projects,
// optionally narrowed to one project
func (s *CommentService) Search(callerID, query, projectID string, limit int) ([]dto.CommentResponse, error) {
	if utils.TrimContent(query) == "" {
		return nil, apperr.NewValidation("search query is required")
	}
	if projectID != "" && !s.permissions.CanViewProject(projectID, callerID) {
		return nil, apperr.ErrForbidden
	}
	if limit <= 0 || limit > commentSearchLimitCap {
		limit = commentSearchLimitCap
	}

	comments, err := s.commentRepo.Search(query, callerID, projectID, limit)
	if err != nil {
		return nil, err
	}
	return toCommentResponses(comments), nil
}

func toCommentResponses(comments []models.Comment) []dto.CommentResponse {
	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, dto.CommentResponse{
			ID:         c.ID,
			TaskID:     c.TaskID,
			AuthorID:   c.AuthorID,
			AuthorName: c.Author.DisplayName(),
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
		})
	}
	return responses
}

// notifyAssigneesExcept dispatches a comment notification to each assignee
// of the task other than the comment's author. Failures are logged and
// swallowed.
func (s *CommentService) notifyAssigneesExcept(task models.Task, authorID, message string) {
	assigneeIDs, err := s.assignmentRepo.ListUserIDsByTask(task.ID)
	if err != nil {
		log.Printf("Failed to load assignees for comment notification on task %s: %v", task.ID, err)
		return
	}
	for _, recipientID := range assigneeIDs {
		if recipientID == authorID {
			continue
		}
		_, err := s.notifications.Dispatch(recipientID, models.NotificationCommentAdded, message, &task.ID, &task.ProjectID, &authorID)
		if err != nil {
			log.Printf("Failed to dispatch comment notification to %s: %v", recipientID, err)
		}
	}
}
