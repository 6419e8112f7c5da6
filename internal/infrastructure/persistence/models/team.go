package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mssp/backend/internal/domain/team"
)

// TeamAssignmentModel is the persistence model for the TeamAssignment
// entity. The partial unique index keeping one open assignment per
// (user, client, role) triple lives in the migrations.
type TeamAssignmentModel struct {
	BaseModel
	UserID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	ClientID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	Role       team.AssignmentRole `gorm:"type:varchar(30);not null"`
	AssignedAt time.Time           `gorm:"type:timestamptz;not null"`
	EndedAt    *time.Time          `gorm:"type:timestamptz"`
	Notes      string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TeamAssignmentModel) TableName() string {
	return "team_assignments"
}

// ToDomain converts the persistence model to a domain TeamAssignment entity.
func (m *TeamAssignmentModel) ToDomain() *team.TeamAssignment {
	return &team.TeamAssignment{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		ClientID:   m.ClientID,
		Role:       m.Role,
		AssignedAt: m.AssignedAt,
		EndedAt:    m.EndedAt,
		Notes:      m.Notes,
	}
}

// FromDomain populates the persistence model from a domain TeamAssignment entity.
func (m *TeamAssignmentModel) FromDomain(a *team.TeamAssignment) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.UserID = a.UserID
	m.ClientID = a.ClientID
	m.Role = a.Role
	m.AssignedAt = a.AssignedAt
	m.EndedAt = a.EndedAt
	m.Notes = a.Notes
}

// TeamAssignmentModelFromDomain creates a new persistence model from a domain TeamAssignment entity.
func TeamAssignmentModelFromDomain(a *team.TeamAssignment) *TeamAssignmentModel {
	m := &TeamAssignmentModel{}
	m.FromDomain(a)
	return m
}
