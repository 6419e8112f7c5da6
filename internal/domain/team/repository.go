package team

import (
	"context"

	"github.com/google/uuid"
)

// AssignmentRepository defines the persistence interface for team assignments
type AssignmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TeamAssignment, error)
	FindByClient(ctx context.Context, clientID uuid.UUID, activeOnly bool) ([]TeamAssignment, error)
	FindByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]TeamAssignment, error)
	// FindActive looks up the open assignment for a (user, client, role)
	// triple; at most one exists
	FindActive(ctx context.Context, userID, clientID uuid.UUID, role AssignmentRole) (*TeamAssignment, error)
	Save(ctx context.Context, a *TeamAssignment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
