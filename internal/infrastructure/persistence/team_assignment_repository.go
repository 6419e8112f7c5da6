package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mssp/backend/internal/domain/shared"
	"github.com/mssp/backend/internal/domain/team"
	"github.com/mssp/backend/internal/infrastructure/persistence/models"
)

// GormTeamAssignmentRepository implements AssignmentRepository using GORM
type GormTeamAssignmentRepository struct {
	db *gorm.DB
}

// NewGormTeamAssignmentRepository creates a new GormTeamAssignmentRepository
func NewGormTeamAssignmentRepository(db *gorm.DB) *GormTeamAssignmentRepository {
	return &GormTeamAssignmentRepository{db: db}
}

// FindByID finds a team assignment by its ID
func (r *GormTeamAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*team.TeamAssignment, error) {
	var model models.TeamAssignmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByClient finds a client's team assignments
func (r *GormTeamAssignmentRepository) FindByClient(ctx context.Context, clientID uuid.UUID, activeOnly bool) ([]team.TeamAssignment, error) {
	query := r.db.WithContext(ctx).Where("client_id = ?", clientID)
	if activeOnly {
		query = query.Where("ended_at IS NULL")
	}

	var assignmentModels []models.TeamAssignmentModel
	if err := query.Order("assigned_at DESC").Find(&assignmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainTeamAssignments(assignmentModels), nil
}

// FindByUser finds a user's client assignments
func (r *GormTeamAssignmentRepository) FindByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]team.TeamAssignment, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("ended_at IS NULL")
	}

	var assignmentModels []models.TeamAssignmentModel
	if err := query.Order("assigned_at DESC").Find(&assignmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainTeamAssignments(assignmentModels), nil
}

// FindActive finds the open assignment for one (user, client, role) triple
func (r *GormTeamAssignmentRepository) FindActive(ctx context.Context, userID, clientID uuid.UUID, role team.AssignmentRole) (*team.TeamAssignment, error) {
	var model models.TeamAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND client_id = ? AND role = ? AND ended_at IS NULL", userID, clientID, role).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a team assignment
func (r *GormTeamAssignmentRepository) Save(ctx context.Context, a *team.TeamAssignment) error {
	model := models.TeamAssignmentModelFromDomain(a)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a team assignment
func (r *GormTeamAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TeamAssignmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainTeamAssignments(assignmentModels []models.TeamAssignmentModel) []team.TeamAssignment {
	assignments := make([]team.TeamAssignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignments[i] = *model.ToDomain()
	}
	return assignments
}

// Ensure GormTeamAssignmentRepository implements AssignmentRepository
var _ team.AssignmentRepository = (*GormTeamAssignmentRepository)(nil)
