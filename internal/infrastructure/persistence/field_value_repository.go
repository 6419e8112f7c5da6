package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mssp/backend/internal/domain/customfield"
	"github.com/mssp/backend/internal/infrastructure/persistence/models"
)

// GormFieldValueRepository implements ValueRepository using GORM
type GormFieldValueRepository struct {
	db *gorm.DB
}

// NewGormFieldValueRepository creates a new GormFieldValueRepository
func NewGormFieldValueRepository(db *gorm.DB) *GormFieldValueRepository {
	return &GormFieldValueRepository{db: db}
}

// FindByEntity finds all value rows stored for one host entity
func (r *GormFieldValueRepository) FindByEntity(ctx context.Context, entityID uuid.UUID) ([]*customfield.FieldValue, error) {
	var valueModels []models.FieldValueModel
	if err := r.db.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Find(&valueModels).Error; err != nil {
		return nil, err
	}
	return toDomainValues(valueModels), nil
}

// FindByEntities finds all value rows stored for a batch of host entities
func (r *GormFieldValueRepository) FindByEntities(ctx context.Context, entityIDs []uuid.UUID) ([]*customfield.FieldValue, error) {
	if len(entityIDs) == 0 {
		return []*customfield.FieldValue{}, nil
	}
	var valueModels []models.FieldValueModel
	if err := r.db.WithContext(ctx).
		Where("entity_id IN ?", entityIDs).
		Find(&valueModels).Error; err != nil {
		return nil, err
	}
	return toDomainValues(valueModels), nil
}

// FindByDefinition finds all value rows stored under one definition
func (r *GormFieldValueRepository) FindByDefinition(ctx context.Context, definitionID uuid.UUID) ([]*customfield.FieldValue, error) {
	var valueModels []models.FieldValueModel
	if err := r.db.WithContext(ctx).
		Where("definition_id = ?", definitionID).
		Find(&valueModels).Error; err != nil {
		return nil, err
	}
	return toDomainValues(valueModels), nil
}

// UpsertAll writes every row in one transaction; an existing
// (definition, entity) row is overwritten in place
func (r *GormFieldValueRepository) UpsertAll(ctx context.Context, values []*customfield.FieldValue) error {
	if len(values) == 0 {
		return nil
	}
	valueModels := make([]*models.FieldValueModel, len(values))
	for i, v := range values {
		valueModels[i] = models.FieldValueModelFromDomain(v)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "definition_id"}, {Name: "entity_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"raw_value", "updated_at"}),
		}).Create(&valueModels).Error
	})
}

// DeleteByEntity removes every value row stored for one host entity
func (r *GormFieldValueRepository) DeleteByEntity(ctx context.Context, entityID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.FieldValueModel{}, "entity_id = ?", entityID).Error
}

func toDomainValues(valueModels []models.FieldValueModel) []*customfield.FieldValue {
	values := make([]*customfield.FieldValue, len(valueModels))
	for i := range valueModels {
		values[i] = valueModels[i].ToDomain()
	}
	return values
}

// Ensure GormFieldValueRepository implements ValueRepository
var _ customfield.ValueRepository = (*GormFieldValueRepository)(nil)
