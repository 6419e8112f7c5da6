package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mssp/backend/internal/domain/metrics"
	"github.com/mssp/backend/internal/domain/shared"
	"github.com/mssp/backend/internal/infrastructure/persistence/models"
)

// GormSLAMetricRepository implements SLAMetricRepository using GORM
type GormSLAMetricRepository struct {
	db *gorm.DB
}

// NewGormSLAMetricRepository creates a new GormSLAMetricRepository
func NewGormSLAMetricRepository(db *gorm.DB) *GormSLAMetricRepository {
	return &GormSLAMetricRepository{db: db}
}

// FindByID finds an SLA metric by its ID
func (r *GormSLAMetricRepository) FindByID(ctx context.Context, id uuid.UUID) (*metrics.SLAMetric, error) {
	var model models.SLAMetricModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByClient finds a client's SLA metrics, optionally bounded by period,
// ordered by period then type
func (r *GormSLAMetricRepository) FindByClient(ctx context.Context, clientID uuid.UUID, fromPeriod, toPeriod string) ([]metrics.SLAMetric, error) {
	query := r.db.WithContext(ctx).Where("client_id = ?", clientID)
	if fromPeriod != "" {
		query = query.Where("period >= ?", fromPeriod)
	}
	if toPeriod != "" {
		query = query.Where("period <= ?", toPeriod)
	}

	var metricModels []models.SLAMetricModel
	if err := query.Order("period ASC, type ASC").Find(&metricModels).Error; err != nil {
		return nil, err
	}

	items := make([]metrics.SLAMetric, len(metricModels))
	for i, model := range metricModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// FindByClientTypePeriod finds the measurement for one (client, type, period) key
func (r *GormSLAMetricRepository) FindByClientTypePeriod(ctx context.Context, clientID uuid.UUID, metricType metrics.MetricType, period string) (*metrics.SLAMetric, error) {
	var model models.SLAMetricModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND type = ? AND period = ?", clientID, metricType, period).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod returns every client's measurements for one month, ordered
// by client then type
func (r *GormSLAMetricRepository) FindByPeriod(ctx context.Context, period string) ([]metrics.SLAMetric, error) {
	var metricModels []models.SLAMetricModel
	if err := r.db.WithContext(ctx).
		Where("period = ?", period).
		Order("client_id ASC, type ASC").
		Find(&metricModels).Error; err != nil {
		return nil, err
	}

	items := make([]metrics.SLAMetric, len(metricModels))
	for i, model := range metricModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// Upsert writes the measurement; an existing (client, type, period) row is
// overwritten in place
func (r *GormSLAMetricRepository) Upsert(ctx context.Context, m *metrics.SLAMetric) error {
	model := models.SLAMetricModelFromDomain(m)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "client_id"}, {Name: "type"}, {Name: "period"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"target_value", "actual_value", "measured_at", "notes", "version", "updated_at",
		}),
	}).Create(model).Error
}

// Delete deletes an SLA metric
func (r *GormSLAMetricRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SLAMetricModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSLAMetricRepository implements SLAMetricRepository
var _ metrics.SLAMetricRepository = (*GormSLAMetricRepository)(nil)
