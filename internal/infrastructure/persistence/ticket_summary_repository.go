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

// GormTicketSummaryRepository implements TicketSummaryRepository using GORM
type GormTicketSummaryRepository struct {
	db *gorm.DB
}

// NewGormTicketSummaryRepository creates a new GormTicketSummaryRepository
func NewGormTicketSummaryRepository(db *gorm.DB) *GormTicketSummaryRepository {
	return &GormTicketSummaryRepository{db: db}
}

// FindByID finds a ticket summary by its ID
func (r *GormTicketSummaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*metrics.TicketSummary, error) {
	var model models.TicketSummaryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByClient finds a client's ticket summaries, optionally bounded by
// period, ordered by period
func (r *GormTicketSummaryRepository) FindByClient(ctx context.Context, clientID uuid.UUID, fromPeriod, toPeriod string) ([]metrics.TicketSummary, error) {
	query := r.db.WithContext(ctx).Where("client_id = ?", clientID)
	if fromPeriod != "" {
		query = query.Where("period >= ?", fromPeriod)
	}
	if toPeriod != "" {
		query = query.Where("period <= ?", toPeriod)
	}

	var summaryModels []models.TicketSummaryModel
	if err := query.Order("period ASC").Find(&summaryModels).Error; err != nil {
		return nil, err
	}

	items := make([]metrics.TicketSummary, len(summaryModels))
	for i, model := range summaryModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// FindByClientPeriod finds the summary for one (client, period) key
func (r *GormTicketSummaryRepository) FindByClientPeriod(ctx context.Context, clientID uuid.UUID, period string) (*metrics.TicketSummary, error) {
	var model models.TicketSummaryModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND period = ?", clientID, period).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod returns every client's summary for one month, ordered by
// client
func (r *GormTicketSummaryRepository) FindByPeriod(ctx context.Context, period string) ([]metrics.TicketSummary, error) {
	var summaryModels []models.TicketSummaryModel
	if err := r.db.WithContext(ctx).
		Where("period = ?", period).
		Order("client_id ASC").
		Find(&summaryModels).Error; err != nil {
		return nil, err
	}

	items := make([]metrics.TicketSummary, len(summaryModels))
	for i, model := range summaryModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// Upsert writes the summary; an existing (client, period) row is
// overwritten in place
func (r *GormTicketSummaryRepository) Upsert(ctx context.Context, s *metrics.TicketSummary) error {
	model := models.TicketSummaryModelFromDomain(s)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "client_id"}, {Name: "period"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_tickets", "resolved_tickets", "escalated_tickets",
			"avg_resolution_hours", "sla_breaches", "recorded_at", "version", "updated_at",
		}),
	}).Create(model).Error
}

// Delete deletes a ticket summary
func (r *GormTicketSummaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TicketSummaryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormTicketSummaryRepository implements TicketSummaryRepository
var _ metrics.TicketSummaryRepository = (*GormTicketSummaryRepository)(nil)
