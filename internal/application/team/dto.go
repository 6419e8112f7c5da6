package team

import (
	"time"

	"github.com/google/uuid"

	"github.com/mssp/backend/internal/domain/team"
)

// AssignRequest opens a team assignment
type AssignRequest struct {
	UserID     uuid.UUID  `json:"user_id" binding:"required"`
	ClientID   uuid.UUID  `json:"client_id" binding:"required"`
	Role       string     `json:"role" binding:"required"`
	AssignedAt *time.Time `json:"assigned_at"`
	Notes      string     `json:"notes"`
}

// EndAssignmentRequest closes a team assignment
type EndAssignmentRequest struct {
	EndedAt *time.Time `json:"ended_at"`
}

// AssignmentResponse is the response shape of a team assignment
type AssignmentResponse struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	ClientID   uuid.UUID  `json:"client_id"`
	Role       string     `json:"role"`
	AssignedAt time.Time  `json:"assigned_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// ToAssignmentResponse maps a domain assignment to its response shape
func ToAssignmentResponse(a *team.TeamAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		ClientID:   a.ClientID,
		Role:       string(a.Role),
		AssignedAt: a.AssignedAt,
		EndedAt:    a.EndedAt,
		Notes:      a.Notes,
	}
}

// ToAssignmentResponses maps a slice of domain assignments
func ToAssignmentResponses(assignments []team.TeamAssignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, ToAssignmentResponse(&assignments[i]))
	}
	return out
}
