package team

import (
	"time"

	"github.com/google/uuid"

	"github.com/mssp/backend/internal/domain/shared"
)

// AssignmentRole is the function a team member performs for a client
type AssignmentRole string

const (
	RoleAccountManager  AssignmentRole = "account_manager"
	RoleLeadEngineer    AssignmentRole = "lead_engineer"
	RoleSupportEngineer AssignmentRole = "support_engineer"
	RoleProjectManager  AssignmentRole = "project_manager"
)

// AllAssignmentRoles returns every known assignment role
func AllAssignmentRoles() []AssignmentRole {
	return []AssignmentRole{
		RoleAccountManager,
		RoleLeadEngineer,
		RoleSupportEngineer,
		RoleProjectManager,
	}
}

// IsValid checks if the role is valid
func (r AssignmentRole) IsValid() bool {
	switch r {
	case RoleAccountManager, RoleLeadEngineer, RoleSupportEngineer, RoleProjectManager:
		return true
	}
	return false
}

// TeamAssignment records that one user serves one client in one role.
// A user may hold multiple roles for the same client, but only one open
// assignment per (user, client, role) at a time; the repository enforces
// that uniqueness.
type TeamAssignment struct {
	shared.BaseEntity
	UserID     uuid.UUID
	ClientID   uuid.UUID
	Role       AssignmentRole
	AssignedAt time.Time
	EndedAt    *time.Time
	Notes      string
}

// NewTeamAssignment opens an assignment
func NewTeamAssignment(userID, clientID uuid.UUID, role AssignmentRole, assignedAt time.Time) (*TeamAssignment, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID is required")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown assignment role: "+string(role))
	}
	if assignedAt.IsZero() {
		assignedAt = time.Now()
	}

	return &TeamAssignment{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ClientID:   clientID,
		Role:       role,
		AssignedAt: assignedAt,
	}, nil
}

// IsActive reports whether the assignment is still open
func (a *TeamAssignment) IsActive() bool {
	return a.EndedAt == nil
}

// End closes the assignment
func (a *TeamAssignment) End(endedAt time.Time) error {
	if a.EndedAt != nil {
		return shared.NewDomainError("INVALID_STATE", "Assignment is already ended")
	}
	if endedAt.IsZero() {
		endedAt = time.Now()
	}
	if endedAt.Before(a.AssignedAt) {
		return shared.NewDomainError("INVALID_DATES", "End date cannot precede the assignment date")
	}
	a.EndedAt = &endedAt
	a.UpdatedAt = time.Now()
	return nil
}

// SetNotes sets free-form notes
func (a *TeamAssignment) SetNotes(notes string) {
	a.Notes = notes
	a.UpdatedAt = time.Now()
}
