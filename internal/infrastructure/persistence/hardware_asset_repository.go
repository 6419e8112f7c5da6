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

// GormAssetRepository implements AssetRepository using GORM
type GormAssetRepository struct {
	db *gorm.DB
}

// NewGormAssetRepository creates a new GormAssetRepository
func NewGormAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{db: db}
}

// FindByID finds a hardware asset by its ID
func (r *GormAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*hardware.HardwareAsset, error) {
	var model models.HardwareAssetModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAssetTag finds a hardware asset by its asset tag
func (r *GormAssetRepository) FindByAssetTag(ctx context.Context, assetTag string) (*hardware.HardwareAsset, error) {
	var model models.HardwareAssetModel
	if err := r.db.WithContext(ctx).
		Where("asset_tag = ?", assetTag).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all hardware assets matching the filter
func (r *GormAssetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hardware.HardwareAsset, error) {
	var assetModels []models.HardwareAssetModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.HardwareAssetModel{}), filter)

	if err := query.Find(&assetModels).Error; err != nil {
		return nil, err
	}

	assets := make([]hardware.HardwareAsset, len(assetModels))
	for i, model := range assetModels {
		assets[i] = *model.ToDomain()
	}
	return assets, nil
}

// Count counts hardware assets matching the filter
func (r *GormAssetRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.HardwareAssetModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByAssetTag checks if an asset with the given tag exists
func (r *GormAssetRepository) ExistsByAssetTag(ctx context.Context, assetTag string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.HardwareAssetModel{}).
		Where("asset_tag = ?", assetTag).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a hardware asset
func (r *GormAssetRepository) Save(ctx context.Context, a *hardware.HardwareAsset) error {
	model := models.HardwareAssetModelFromDomain(a)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a hardware asset
func (r *GormAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.HardwareAssetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormAssetRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, HardwareAssetSortFields, "asset_tag")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("asset_tag ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAssetRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("asset_tag ILIKE ? OR manufacturer ILIKE ? OR model ILIKE ? OR serial_number ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "manufacturer":
			query = query.Where("manufacturer = ?", value)
		}
	}

	return query
}

// Ensure GormAssetRepository implements AssetRepository
var _ hardware.AssetRepository = (*GormAssetRepository)(nil)
