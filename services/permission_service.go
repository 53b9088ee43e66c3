package services

import (
	"github.com/taskdeck-simple/models"
	"github.com/taskdeck-simple/repositories"
)

// PermissionService is the single authority for membership and role checks.
// Every mutating call path consults it before touching the datastore.
// It only answers questions: no side effects, no domain errors — callers
// translate a false into an authorization denial.
type PermissionService struct {
	membershipRepo *repositories.MembershipRepository
}

// NewPermissionService creates a new permission service instance
func NewPermissionService() *PermissionService {
	return &PermissionService{
		membershipRepo: repositories.NewMembershipRepository(),
	}
}

// RoleOf resolves a user's role in a project, with found=false when the
// user holds no membership
func (s *PermissionService) RoleOf(projectID, userID string) (models.ProjectRole, bool) {
	role, found, err := s.membershipRepo.FindRole(projectID, userID)
	if err != nil {
		return "", false
	}
	return role, found
}

// IsMember reports whether the user holds any role in the project
func (s *PermissionService) IsMember(projectID, userID string) bool {
	_, found := s.RoleOf(projectID, userID)
	return found
}

// IsAdmin reports whether the user is a project admin
func (s *PermissionService) IsAdmin(projectID, userID string) bool {
	role, found := s.RoleOf(projectID, userID)
	return found && role == models.RoleAdmin
}

// CanViewProject gates reads of a project, its tasks and comments
func (s *PermissionService) CanViewProject(projectID, userID string) bool {
	return s.IsMember(projectID, userID)
}

// CanCreateTask gates task creation; any member may create tasks
func (s *PermissionService) CanCreateTask(projectID, userID string) bool {
	return s.IsMember(projectID, userID)
}

// CanEditTask gates task field updates and deletion: the task's creator or
// a project admin
func (s *PermissionService) CanEditTask(task models.Task, userID string) bool {
	if task.CreatedBy == userID {
		return s.IsMember(task.ProjectID, userID)
	}
	return s.IsAdmin(task.ProjectID, userID)
}

// CanUpdateStatus gates status transitions. Deliberately looser than field
// edits: any member may move a task through the board.
func (s *PermissionService) CanUpdateStatus(projectID, userID string) bool {
	return s.IsMember(projectID, userID)
}

// CanAssign gates assignment changes: the caller must be a member and the
// target user must also hold membership in the task's project
func (s *PermissionService) CanAssign(projectID, callerID, targetID string) bool {
	return s.IsMember(projectID, callerID) && s.IsMember(projectID, targetID)
}

// CanManageMembers gates adding and removing project members
func (s *PermissionService) CanManageMembers(projectID, userID string) bool {
	return s.IsAdmin(projectID, userID)
}

// CanManageProject gates archive, unarchive and deletion of a project
func (s *PermissionService) CanManageProject(projectID, userID string) bool {
	return s.IsAdmin(projectID, userID)
}
