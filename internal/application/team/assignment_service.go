package team

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mssp/backend/internal/domain/client"
	"github.com/mssp/backend/internal/domain/identity"
	"github.com/mssp/backend/internal/domain/shared"
	"github.com/mssp/backend/internal/domain/team"
)

// AssignmentService manages which team member serves which client in
// which role
type AssignmentService struct {
	assignmentRepo team.AssignmentRepository
	userRepo       identity.UserRepository
	clientRepo     client.ClientRepository
	logger         *zap.Logger
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(
	assignmentRepo team.AssignmentRepository,
	userRepo identity.UserRepository,
	clientRepo client.ClientRepository,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		clientRepo:     clientRepo,
		logger:         logger,
	}
}

// Assign opens an assignment. At most one open assignment may exist per
// (user, client, role) triple.
func (s *AssignmentService) Assign(ctx context.Context, req AssignRequest) (*AssignmentResponse, error) {
	role := team.AssignmentRole(req.Role)
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown assignment role: "+req.Role)
	}

	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("USER_INACTIVE", "Deactivated users cannot be assigned")
	}
	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	existing, err := s.assignmentRepo.FindActive(ctx, req.UserID, req.ClientID, role)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An open assignment for this user, client, and role already exists")
	}

	assignedAt := time.Now()
	if req.AssignedAt != nil {
		assignedAt = *req.AssignedAt
	}
	a, err := team.NewTeamAssignment(req.UserID, req.ClientID, role, assignedAt)
	if err != nil {
		return nil, err
	}
	a.SetNotes(req.Notes)

	if err := s.assignmentRepo.Save(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("Team member assigned",
		zap.String("assignment_id", a.ID.String()),
		zap.String("user_id", req.UserID.String()),
		zap.String("client_id", req.ClientID.String()),
		zap.String("role", req.Role))

	resp := ToAssignmentResponse(a)
	return &resp, nil
}

// End closes an open assignment
func (s *AssignmentService) End(ctx context.Context, id uuid.UUID, req EndAssignmentRequest) (*AssignmentResponse, error) {
	a, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	endedAt := time.Now()
	if req.EndedAt != nil {
		endedAt = *req.EndedAt
	}
	if err := a.End(endedAt); err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.Save(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("Team assignment ended",
		zap.String("assignment_id", id.String()))

	resp := ToAssignmentResponse(a)
	return &resp, nil
}

// GetByID retrieves an assignment
func (s *AssignmentService) GetByID(ctx context.Context, id uuid.UUID) (*AssignmentResponse, error) {
	a, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAssignmentResponse(a)
	return &resp, nil
}

// ListByClient retrieves a client's team
func (s *AssignmentService) ListByClient(ctx context.Context, clientID uuid.UUID, activeOnly bool) ([]AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.FindByClient(ctx, clientID, activeOnly)
	if err != nil {
		return nil, err
	}
	return ToAssignmentResponses(assignments), nil
}

// ListByUser retrieves a user's client portfolio
func (s *AssignmentService) ListByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.FindByUser(ctx, userID, activeOnly)
	if err != nil {
		return nil, err
	}
	return ToAssignmentResponses(assignments), nil
}

// Delete removes an assignment record
func (s *AssignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.assignmentRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.assignmentRepo.Delete(ctx, id)
}
