package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mssp/backend/internal/domain/scope"
	"github.com/mssp/backend/internal/domain/shared"
	"github.com/mssp/backend/internal/infrastructure/persistence/models"
)

// GormScopeRepository implements ScopeRepository using GORM
type GormScopeRepository struct {
	db *gorm.DB
}

// NewGormScopeRepository creates a new GormScopeRepository
func NewGormScopeRepository(db *gorm.DB) *GormScopeRepository {
	return &GormScopeRepository{db: db}
}

// FindByID finds a service scope by its ID
func (r *GormScopeRepository) FindByID(ctx context.Context, id uuid.UUID) (*scope.ServiceScope, error) {
	var model models.ServiceScopeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all service scopes matching the filter
func (r *GormScopeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]scope.ServiceScope, error) {
	var scopeModels []models.ServiceScopeModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ServiceScopeModel{}), filter)

	if err := query.Find(&scopeModels).Error; err != nil {
		return nil, err
	}
	return toDomainScopes(scopeModels), nil
}

// FindByContract finds every scope sold under one contract
func (r *GormScopeRepository) FindByContract(ctx context.Context, contractID uuid.UUID) ([]scope.ServiceScope, error) {
	var scopeModels []models.ServiceScopeModel
	if err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at ASC").
		Find(&scopeModels).Error; err != nil {
		return nil, err
	}
	return toDomainScopes(scopeModels), nil
}

// FindByService finds scopes referencing one catalog service
func (r *GormScopeRepository) FindByService(ctx context.Context, serviceID uuid.UUID, filter shared.Filter) ([]scope.ServiceScope, error) {
	var scopeModels []models.ServiceScopeModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ServiceScopeModel{}).
			Where("service_id = ?", serviceID),
		filter,
	)

	if err := query.Find(&scopeModels).Error; err != nil {
		return nil, err
	}
	return toDomainScopes(scopeModels), nil
}

// Count counts service scopes matching the filter
func (r *GormScopeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ServiceScopeModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a service scope
func (r *GormScopeRepository) Save(ctx context.Context, s *scope.ServiceScope) error {
	model := models.ServiceScopeModelFromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a service scope
func (r *GormScopeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ServiceScopeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormScopeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, ScopeSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormScopeRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "contract_id":
			query = query.Where("contract_id = ?", value)
		case "service_id":
			query = query.Where("service_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

func toDomainScopes(scopeModels []models.ServiceScopeModel) []scope.ServiceScope {
	scopes := make([]scope.ServiceScope, len(scopeModels))
	for i, model := range scopeModels {
		scopes[i] = *model.ToDomain()
	}
	return scopes
}

// Ensure GormScopeRepository implements ScopeRepository
var _ scope.ScopeRepository = (*GormScopeRepository)(nil)
