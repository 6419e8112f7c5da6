package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mssp/backend/internal/domain/hardware"
	"github.com/mssp/backend/internal/domain/shared"
	"github.com/mssp/backend/internal/infrastructure/persistence/models"
)

// GormHardwareAssignmentRepository implements AssignmentRepository using GORM
type GormHardwareAssignmentRepository struct {
	db *gorm.DB
}

// NewGormHardwareAssignmentRepository creates a new GormHardwareAssignmentRepository
func NewGormHardwareAssignmentRepository(db *gorm.DB) *GormHardwareAssignmentRepository {
	return &GormHardwareAssignmentRepository{db: db}
}

// FindByID finds an assignment by its ID
func (r *GormHardwareAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*hardware.ClientHardwareAssignment, error) {
	var model models.ClientHardwareAssignmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByClient finds a client's hardware assignments
func (r *GormHardwareAssignmentRepository) FindByClient(ctx context.Context, clientID uuid.UUID, activeOnly bool) ([]hardware.ClientHardwareAssignment, error) {
	query := r.db.WithContext(ctx).Where("client_id = ?", clientID)
	if activeOnly {
		query = query.Where("status = ?", hardware.AssignmentActive)
	}

	var assignmentModels []models.ClientHardwareAssignmentModel
	if err := query.Order("assigned_at DESC").Find(&assignmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainHardwareAssignments(assignmentModels), nil
}

// FindByAsset finds an asset's assignment history, newest first
func (r *GormHardwareAssignmentRepository) FindByAsset(ctx context.Context, assetID uuid.UUID) ([]hardware.ClientHardwareAssignment, error) {
	var assignmentModels []models.ClientHardwareAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("assigned_at DESC").
		Find(&assignmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainHardwareAssignments(assignmentModels), nil
}

// FindActiveByAsset finds the asset's open assignment
func (r *GormHardwareAssignmentRepository) FindActiveByAsset(ctx context.Context, assetID uuid.UUID) (*hardware.ClientHardwareAssignment, error) {
	var model models.ClientHardwareAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("asset_id = ? AND status = ?", assetID, hardware.AssignmentActive).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveWithAsset persists the assignment and the asset's status flip in one
// transaction
func (r *GormHardwareAssignmentRepository) SaveWithAsset(ctx context.Context, assignment *hardware.ClientHardwareAssignment, asset *hardware.HardwareAsset) error {
	assignmentModel := models.ClientHardwareAssignmentModelFromDomain(assignment)
	assetModel := models.HardwareAssetModelFromDomain(asset)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(assignmentModel).Error; err != nil {
			return err
		}
		return tx.Save(assetModel).Error
	})
}

// Save creates or updates an assignment
func (r *GormHardwareAssignmentRepository) Save(ctx context.Context, assignment *hardware.ClientHardwareAssignment) error {
	model := models.ClientHardwareAssignmentModelFromDomain(assignment)
	return r.db.WithContext(ctx).Save(model).Error
}

func toDomainHardwareAssignments(assignmentModels []models.ClientHardwareAssignmentModel) []hardware.ClientHardwareAssignment {
	assignments := make([]hardware.ClientHardwareAssignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignments[i] = *model.ToDomain()
	}
	return assignments
}

// Ensure GormHardwareAssignmentRepository implements AssignmentRepository
var _ hardware.AssignmentRepository = (*GormHardwareAssignmentRepository)(nil)
