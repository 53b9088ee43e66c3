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

// ProjectService handles business logic for projects and their memberships
type ProjectService struct {
	projectRepo    *repositories.ProjectRepository
	membershipRepo *repositories.MembershipRepository
	userRepo       *repositories.UserRepository
	permissions    *PermissionService
	notifications  *NotificationService
}

// NewProjectService creates a new project service instance
func NewProjectService() *ProjectService {
	return &ProjectService{
		projectRepo:    repositories.NewProjectRepository(),
		membershipRepo: repositories.NewMembershipRepository(),
		userRepo:       repositories.NewUserRepository(),
		permissions:    NewPermissionService(),
		notifications:  NewNotificationService(),
	}
}

// Create creates a project; the creator becomes its first admin member in
// the same transaction
func (s *ProjectService) Create(callerID string, req dto.CreateProjectRequest) (models.Project, error) {
	title := utils.TrimContent(req.Title)
	if n := utf8.RuneCountInString(title); n < 1 || n > 100 {
		return models.Project{}, apperr.NewValidation("title must be between 1 and 100 characters")
	}

	project := models.Project{
		Title:       title,
		Description: req.Description,
		CreatorID:   callerID,
	}
	return s.projectRepo.CreateWithAdmin(project)
}

// Get retrieves a project the caller is a member of
func (s *ProjectService) Get(projectID, callerID string) (models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return models.Project{}, asNotFound(err)
	}
	if !s.permissions.CanViewProject(projectID, callerID) {
		return models.Project{}, apperr.ErrForbidden
	}
	return project, nil
}

// List retrieves every project the caller is a member of
func (s *ProjectService) List(callerID string) ([]models.Project, error) {
	return s.projectRepo.ListForUser(callerID)
}

// Update modifies a project's title or description; admin only
func (s *ProjectService) Update(projectID, callerID string, req dto.UpdateProjectRequest) (models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return models.Project{}, asNotFound(err)
	}
	if !s.permissions.CanManageProject(projectID, callerID) {
		return models.Project{}, apperr.ErrForbidden
	}

	if req.Title != nil {
		title := utils.TrimContent(*req.Title)
		if n := utf8.RuneCountInString(title); n < 1 || n > 100 {
			return models.Project{}, apperr.NewValidation("title must be between 1 and 100 characters")
		}
		project.Title = title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}

	if err := s.projectRepo.Update(project); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// SetArchived archives or unarchives a project; admin only
func (s *ProjectService) SetArchived(projectID, callerID string, archived bool) (models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return models.Project{}, asNotFound(err)
	}
	if !s.permissions.CanManageProject(projectID, callerID) {
		return models.Project{}, apperr.ErrForbidden
	}

	project.Archived = archived
	if err := s.projectRepo.Update(project); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// Delete removes a project and everything scoped to it; admin only
func (s *ProjectService) Delete(projectID, callerID string) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		return asNotFound(err)
	}
	if !s.permissions.CanManageProject(projectID, callerID) {
		return apperr.ErrForbidden
	}
	return s.projectRepo.Delete(projectID)
}

// ListMembers retrieves a project's members; any member may look
func (s *ProjectService) ListMembers(projectID, callerID string) ([]dto.MemberResponse, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		return nil, asNotFound(err)
	}
	if !s.permissions.CanViewProject(projectID, callerID) {
		return nil, apperr.ErrForbidden
	}

	memberships, err := s.membershipRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}

	members := make([]dto.MemberResponse, 0, len(memberships))
	for _, m := range memberships {
		members = append(members, dto.MemberResponse{
			UserID:      m.UserID,
			DisplayName: m.User.DisplayName(),
			Email:       m.User.Email,
			Role:        m.Role,
			JoinedAt:    m.JoinedAt,
		})
	}
	return members, nil
}

// AddMember adds a user to a project; admin only, duplicate membership is
// a conflict. The new member is notified.
func (s *ProjectService) AddMember(projectID, callerID, userID string, role models.ProjectRole) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return asNotFound(err)
	}
	if !s.permissions.CanManageMembers(projectID, callerID) {
		return apperr.ErrForbidden
	}

	if role == "" {
		role = models.RoleMember
	}
	if !role.Valid() {
		return apperr.NewValidation("role must be member or admin")
	}

	userExists, err := s.userRepo.Exists(userID)
	if err != nil {
		return err
	}
	if !userExists {
		return apperr.ErrNotFound
	}

	memberExists, err := s.membershipRepo.Exists(projectID, userID)
	if err != nil {
		return err
	}
	if memberExists {
		return apperr.ErrConflict
	}

	if err := s.membershipRepo.Create(models.Membership{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}); err != nil {
		return err
	}

	_, err = s.notifications.Dispatch(userID, models.NotificationMemberAdded,
		fmt.Sprintf("You were added to project %q", project.Title),
		nil, &project.ID, &callerID)
	if err != nil {
		log.Printf("Failed to dispatch member notification to %s: %v", userID, err)
	}
	return nil
}

// RemoveMember removes a user from a project together with their task
// assignments there; admin only, and admins cannot remove themselves
func (s *ProjectService) RemoveMember(projectID, callerID, userID string) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		return asNotFound(err)
	}
	if !s.permissions.CanManageMembers(projectID, callerID) {
		return apperr.ErrForbidden
	}
	if callerID == userID {
		return apperr.NewValidation("cannot remove yourself from the project")
	}

	exists, err := s.membershipRepo.Exists(projectID, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.ErrNotFound
	}

	return s.membershipRepo.Delete(projectID, userID)
}
