package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mssp/backend/internal/domain/customfield"
	"github.com/mssp/backend/internal/domain/shared"
	"github.com/mssp/backend/internal/infrastructure/persistence/models"
)

// GormFieldDefinitionRepository implements DefinitionRepository using GORM
type GormFieldDefinitionRepository struct {
	db *gorm.DB
}

// NewGormFieldDefinitionRepository creates a new GormFieldDefinitionRepository
func NewGormFieldDefinitionRepository(db *gorm.DB) *GormFieldDefinitionRepository {
	return &GormFieldDefinitionRepository{db: db}
}

// FindByID finds a field definition by its ID regardless of its active flag
func (r *GormFieldDefinitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*customfield.FieldDefinition, error) {
	var model models.FieldDefinitionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEntityTypeAndName looks a name up across active and inactive
// definitions; inactive definitions keep their name reserved
func (r *GormFieldDefinitionRepository) FindByEntityTypeAndName(ctx context.Context, entityType customfield.EntityType, name string) (*customfield.FieldDefinition, error) {
	var model models.FieldDefinitionModel
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND name = ?", entityType, name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEntityType returns definitions for one entity type ordered by
// display order then name
func (r *GormFieldDefinitionRepository) FindByEntityType(ctx context.Context, entityType customfield.EntityType, includeInactive bool) ([]*customfield.FieldDefinition, error) {
	query := r.db.WithContext(ctx).
		Model(&models.FieldDefinitionModel{}).
		Where("entity_type = ?", entityType)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var defModels []models.FieldDefinitionModel
	if err := query.Order("display_order ASC, name ASC").Find(&defModels).Error; err != nil {
		return nil, err
	}

	defs := make([]*customfield.FieldDefinition, len(defModels))
	for i := range defModels {
		defs[i] = defModels[i].ToDomain()
	}
	return defs, nil
}

// List returns a page of definitions plus the unpaged total
func (r *GormFieldDefinitionRepository) List(ctx context.Context, filter customfield.DefinitionFilter) ([]*customfield.FieldDefinition, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FieldDefinitionModel{})
	if filter.EntityType != nil {
		query = query.Where("entity_type = ?", *filter.EntityType)
	}
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var defModels []models.FieldDefinitionModel
	if err := query.Order("entity_type ASC, display_order ASC, name ASC").Find(&defModels).Error; err != nil {
		return nil, 0, err
	}

	defs := make([]*customfield.FieldDefinition, len(defModels))
	for i := range defModels {
		defs[i] = defModels[i].ToDomain()
	}
	return defs, total, nil
}

// Save creates or updates a field definition
func (r *GormFieldDefinitionRepository) Save(ctx context.Context, def *customfield.FieldDefinition) error {
	model := models.FieldDefinitionModelFromDomain(def)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteWithValues hard-deletes the definition together with every value
// row stored under it, in one transaction
func (r *GormFieldDefinitionRepository) DeleteWithValues(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.FieldValueModel{}, "definition_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.FieldDefinitionModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Reorder applies new display orders for one entity type atomically
func (r *GormFieldDefinitionRepository) Reorder(ctx context.Context, entityType customfield.EntityType, orders map[uuid.UUID]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, order := range orders {
			result := tx.Model(&models.FieldDefinitionModel{}).
				Where("id = ? AND entity_type = ?", id, entityType).
				Update("display_order", order)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrNotFound
			}
		}
		return nil
	})
}

// Ensure GormFieldDefinitionRepository implements DefinitionRepository
var _ customfield.DefinitionRepository = (*GormFieldDefinitionRepository)(nil)
