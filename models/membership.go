package models

import "time"

// ProjectRole represents a member's role within a project
type ProjectRole string

const (
	RoleMember ProjectRole = "member"
	RoleAdmin  ProjectRole = "admin"
)

// Valid reports whether the role is one of the known project roles
func (r ProjectRole) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// Membership binds a user to a project with a role.
// Every project-scoped permission check resolves through this row.
type Membership struct {
	ProjectID string      `json:"projectId" gorm:"primaryKey;type:uuid"`
	UserID    string      `json:"userId" gorm:"primaryKey;type:uuid"`
	Role      ProjectRole `json:"role" gorm:"type:varchar(10);not null;default:'member'"`
	JoinedAt  time.Time   `json:"joinedAt" gorm:"autoCreateTime"`

	// Relations
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
