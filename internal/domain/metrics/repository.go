package metrics

import (
	"context"

	"github.com/google/uuid"
)

// SLAMetricRepository defines the persistence interface for SLA metrics
type SLAMetricRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SLAMetric, error)
	FindByClient(ctx context.Context, clientID uuid.UUID, fromPeriod, toPeriod string) ([]SLAMetric, error)
	FindByClientTypePeriod(ctx context.Context, clientID uuid.UUID, metricType MetricType, period string) (*SLAMetric, error)
	// FindByPeriod returns every client's measurements for one month
	FindByPeriod(ctx context.Context, period string) ([]SLAMetric, error)
	// Upsert keeps one row per (client, type, period), overwriting on conflict
	Upsert(ctx context.Context, m *SLAMetric) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TicketSummaryRepository defines the persistence interface for ticket
// summaries
type TicketSummaryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TicketSummary, error)
	FindByClient(ctx context.Context, clientID uuid.UUID, fromPeriod, toPeriod string) ([]TicketSummary, error)
	FindByClientPeriod(ctx context.Context, clientID uuid.UUID, period string) (*TicketSummary, error)
	// FindByPeriod returns every client's summary for one month
	FindByPeriod(ctx context.Context, period string) ([]TicketSummary, error)
	// Upsert keeps one row per (client, period), overwriting on conflict
	Upsert(ctx context.Context, s *TicketSummary) error
	Delete(ctx context.Context, id uuid.UUID) error
}
