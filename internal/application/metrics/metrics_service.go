package metrics

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mssp/backend/internal/domain/client"
	"github.com/mssp/backend/internal/domain/metrics"
	"github.com/mssp/backend/internal/domain/shared"
)

// MetricsService records SLA measurements and ticket volumes per client
// and calendar month. Recording the same key twice overwrites the earlier
// row.
type MetricsService struct {
	slaRepo    metrics.SLAMetricRepository
	ticketRepo metrics.TicketSummaryRepository
	clientRepo client.ClientRepository
	logger     *zap.Logger
}

// NewMetricsService creates a new metrics service
func NewMetricsService(
	slaRepo metrics.SLAMetricRepository,
	ticketRepo metrics.TicketSummaryRepository,
	clientRepo client.ClientRepository,
	logger *zap.Logger,
) *MetricsService {
	return &MetricsService{
		slaRepo:    slaRepo,
		ticketRepo: ticketRepo,
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// RecordSLAMetric upserts one (client, type, period) measurement
func (s *MetricsService) RecordSLAMetric(ctx context.Context, req RecordSLAMetricRequest) (*SLAMetricResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	metricType := metrics.MetricType(req.Type)
	existing, err := s.slaRepo.FindByClientTypePeriod(ctx, req.ClientID, metricType, req.Period)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var m *metrics.SLAMetric
	if existing != nil {
		if err := existing.RecordActual(req.ActualValue); err != nil {
			return nil, err
		}
		existing.SetNotes(req.Notes)
		m = existing
	} else {
		m, err = metrics.NewSLAMetric(req.ClientID, metricType, req.Period, req.TargetValue, req.ActualValue)
		if err != nil {
			return nil, err
		}
		m.SetNotes(req.Notes)
	}

	if err := s.slaRepo.Upsert(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("SLA metric recorded",
		zap.String("client_id", req.ClientID.String()),
		zap.String("type", req.Type),
		zap.String("period", req.Period),
		zap.Bool("breached", m.IsBreached()))

	resp := ToSLAMetricResponse(m)
	return &resp, nil
}

// ListSLAMetrics retrieves a client's SLA history, optionally bounded by
// period
func (s *MetricsService) ListSLAMetrics(ctx context.Context, clientID uuid.UUID, filter MetricsRangeFilter) ([]SLAMetricResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	items, err := s.slaRepo.FindByClient(ctx, clientID, filter.FromPeriod, filter.ToPeriod)
	if err != nil {
		return nil, err
	}
	return ToSLAMetricResponses(items), nil
}

// DeleteSLAMetric removes one measurement
func (s *MetricsService) DeleteSLAMetric(ctx context.Context, id uuid.UUID) error {
	if _, err := s.slaRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.slaRepo.Delete(ctx, id)
}

// RecordTicketSummary upserts one (client, period) ticket volume row
func (s *MetricsService) RecordTicketSummary(ctx context.Context, req RecordTicketSummaryRequest) (*TicketSummaryResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	existing, err := s.ticketRepo.FindByClientPeriod(ctx, req.ClientID, req.Period)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var summary *metrics.TicketSummary
	if existing != nil {
		if err := existing.UpdateCounts(req.TotalTickets, req.ResolvedTickets, req.EscalatedTickets, req.AvgResolutionHours, req.SLABreaches); err != nil {
			return nil, err
		}
		summary = existing
	} else {
		summary, err = metrics.NewTicketSummary(req.ClientID, req.Period, req.TotalTickets, req.ResolvedTickets, req.EscalatedTickets, req.AvgResolutionHours, req.SLABreaches)
		if err != nil {
			return nil, err
		}
	}

	if err := s.ticketRepo.Upsert(ctx, summary); err != nil {
		return nil, err
	}

	s.logger.Info("Ticket summary recorded",
		zap.String("client_id", req.ClientID.String()),
		zap.String("period", req.Period),
		zap.Int("total", summary.TotalTickets))

	resp := ToTicketSummaryResponse(summary)
	return &resp, nil
}

// ListTicketSummaries retrieves a client's ticket volume history
func (s *MetricsService) ListTicketSummaries(ctx context.Context, clientID uuid.UUID, filter MetricsRangeFilter) ([]TicketSummaryResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	items, err := s.ticketRepo.FindByClient(ctx, clientID, filter.FromPeriod, filter.ToPeriod)
	if err != nil {
		return nil, err
	}
	return ToTicketSummaryResponses(items), nil
}

// DeleteTicketSummary removes one ticket volume row
func (s *MetricsService) DeleteTicketSummary(ctx context.Context, id uuid.UUID) error {
	if _, err := s.ticketRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.ticketRepo.Delete(ctx, id)
}

// Dashboard rolls one month up across all clients: average achievement and
// breach count per metric type plus total ticket volume
func (s *MetricsService) Dashboard(ctx context.Context, period string) (*PeriodDashboardResponse, error) {
	if err := metrics.ValidatePeriod(period); err != nil {
		return nil, err
	}

	slaItems, err := s.slaRepo.FindByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	summaries, err := s.ticketRepo.FindByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	clients := make(map[uuid.UUID]struct{})

	type bucket struct {
		sum      decimal.Decimal
		count    int
		breaches int
	}
	buckets := make(map[metrics.MetricType]*bucket)
	for i := range slaItems {
		m := &slaItems[i]
		clients[m.ClientID] = struct{}{}
		b, ok := buckets[m.Type]
		if !ok {
			b = &bucket{}
			buckets[m.Type] = b
		}
		b.sum = b.sum.Add(m.Achievement())
		b.count++
		if m.IsBreached() {
			b.breaches++
		}
	}

	sla := make([]SLATypeAggregate, 0, len(buckets))
	for _, metricType := range []metrics.MetricType{metrics.MetricUptime, metrics.MetricResponseTime, metrics.MetricResolutionTime} {
		b, ok := buckets[metricType]
		if !ok {
			continue
		}
		sla = append(sla, SLATypeAggregate{
			Type:           string(metricType),
			Measurements:   b.count,
			AvgAchievement: b.sum.Div(decimal.NewFromInt(int64(b.count))).Round(2),
			Breaches:       b.breaches,
		})
	}

	var tickets TicketTotals
	var resolutionSum decimal.Decimal
	var resolutionCount int
	for i := range summaries {
		t := &summaries[i]
		clients[t.ClientID] = struct{}{}
		tickets.TotalTickets += t.TotalTickets
		tickets.ResolvedTickets += t.ResolvedTickets
		tickets.EscalatedTickets += t.EscalatedTickets
		tickets.SLABreaches += t.SLABreaches
		if t.TotalTickets > 0 {
			resolutionSum = resolutionSum.Add(t.AvgResolutionHours)
			resolutionCount++
		}
	}
	if resolutionCount > 0 {
		tickets.AvgResolutionHours = resolutionSum.Div(decimal.NewFromInt(int64(resolutionCount))).Round(2)
	}

	return &PeriodDashboardResponse{
		Period:  period,
		Clients: len(clients),
		SLA:     sla,
		Tickets: tickets,
	}, nil
}
