package metrics

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mssp/backend/internal/domain/metrics"
)

// MockSLAMetricRepository is a mock implementation of metrics.SLAMetricRepository
type MockSLAMetricRepository struct {
	mock.Mock
}

func (m *MockSLAMetricRepository) FindByID(ctx context.Context, id uuid.UUID) (*metrics.SLAMetric, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.SLAMetric), args.Error(1)
}

func (m *MockSLAMetricRepository) FindByClient(ctx context.Context, clientID uuid.UUID, fromPeriod, toPeriod string) ([]metrics.SLAMetric, error) {
	args := m.Called(ctx, clientID, fromPeriod, toPeriod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]metrics.SLAMetric), args.Error(1)
}

func (m *MockSLAMetricRepository) FindByClientTypePeriod(ctx context.Context, clientID uuid.UUID, metricType metrics.MetricType, period string) (*metrics.SLAMetric, error) {
	args := m.Called(ctx, clientID, metricType, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.SLAMetric), args.Error(1)
}

func (m *MockSLAMetricRepository) FindByPeriod(ctx context.Context, period string) ([]metrics.SLAMetric, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]metrics.SLAMetric), args.Error(1)
}

func (m *MockSLAMetricRepository) Upsert(ctx context.Context, metric *metrics.SLAMetric) error {
	args := m.Called(ctx, metric)
	return args.Error(0)
}

func (m *MockSLAMetricRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTicketSummaryRepository is a mock implementation of metrics.TicketSummaryRepository
type MockTicketSummaryRepository struct {
	mock.Mock
}

func (m *MockTicketSummaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*metrics.TicketSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.TicketSummary), args.Error(1)
}

func (m *MockTicketSummaryRepository) FindByClient(ctx context.Context, clientID uuid.UUID, fromPeriod, toPeriod string) ([]metrics.TicketSummary, error) {
	args := m.Called(ctx, clientID, fromPeriod, toPeriod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]metrics.TicketSummary), args.Error(1)
}

func (m *MockTicketSummaryRepository) FindByClientPeriod(ctx context.Context, clientID uuid.UUID, period string) (*metrics.TicketSummary, error) {
	args := m.Called(ctx, clientID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.TicketSummary), args.Error(1)
}

func (m *MockTicketSummaryRepository) FindByPeriod(ctx context.Context, period string) ([]metrics.TicketSummary, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]metrics.TicketSummary), args.Error(1)
}

func (m *MockTicketSummaryRepository) Upsert(ctx context.Context, s *metrics.TicketSummary) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockTicketSummaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func slaMetric(t *testing.T, clientID uuid.UUID, metricType metrics.MetricType, target, actual int64) metrics.SLAMetric {
	t.Helper()
	m, err := metrics.NewSLAMetric(clientID, metricType, "2026-07", decimal.NewFromInt(target), decimal.NewFromInt(actual))
	require.NoError(t, err)
	return *m
}

func ticketSummary(t *testing.T, clientID uuid.UUID, total, resolved int, avgHours int64) metrics.TicketSummary {
	t.Helper()
	s, err := metrics.NewTicketSummary(clientID, "2026-07", total, resolved, 0, decimal.NewFromInt(avgHours), 0)
	require.NoError(t, err)
	return *s
}

func TestMetricsService_Dashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("rolls a month up across clients", func(t *testing.T) {
		slaRepo := new(MockSLAMetricRepository)
		ticketRepo := new(MockTicketSummaryRepository)
		svc := NewMetricsService(slaRepo, ticketRepo, nil, zap.NewNop())

		clientA := uuid.New()
		clientB := uuid.New()

		slaRepo.On("FindByPeriod", ctx, "2026-07").Return([]metrics.SLAMetric{
			slaMetric(t, clientA, metrics.MetricUptime, 100, 100),
			slaMetric(t, clientB, metrics.MetricUptime, 100, 90),
			slaMetric(t, clientA, metrics.MetricResponseTime, 4, 2),
		}, nil)
		ticketRepo.On("FindByPeriod", ctx, "2026-07").Return([]metrics.TicketSummary{
			ticketSummary(t, clientA, 40, 38, 6),
			ticketSummary(t, clientB, 10, 10, 2),
		}, nil)

		resp, err := svc.Dashboard(ctx, "2026-07")

		require.NoError(t, err)
		assert.Equal(t, "2026-07", resp.Period)
		assert.Equal(t, 2, resp.Clients)

		require.Len(t, resp.SLA, 2)
		uptime := resp.SLA[0]
		assert.Equal(t, string(metrics.MetricUptime), uptime.Type)
		assert.Equal(t, 2, uptime.Measurements)
		assert.True(t, uptime.AvgAchievement.Equal(decimal.NewFromInt(95)), "got %s", uptime.AvgAchievement)
		assert.Equal(t, 1, uptime.Breaches)

		response := resp.SLA[1]
		assert.Equal(t, string(metrics.MetricResponseTime), response.Type)
		assert.True(t, response.AvgAchievement.Equal(decimal.NewFromInt(200)), "got %s", response.AvgAchievement)
		assert.Equal(t, 0, response.Breaches)

		assert.Equal(t, 50, resp.Tickets.TotalTickets)
		assert.Equal(t, 48, resp.Tickets.ResolvedTickets)
		assert.True(t, resp.Tickets.AvgResolutionHours.Equal(decimal.NewFromInt(4)))
	})

	t.Run("empty month", func(t *testing.T) {
		slaRepo := new(MockSLAMetricRepository)
		ticketRepo := new(MockTicketSummaryRepository)
		svc := NewMetricsService(slaRepo, ticketRepo, nil, zap.NewNop())

		slaRepo.On("FindByPeriod", ctx, "2026-01").Return([]metrics.SLAMetric{}, nil)
		ticketRepo.On("FindByPeriod", ctx, "2026-01").Return([]metrics.TicketSummary{}, nil)

		resp, err := svc.Dashboard(ctx, "2026-01")

		require.NoError(t, err)
		assert.Equal(t, 0, resp.Clients)
		assert.Empty(t, resp.SLA)
		assert.Equal(t, 0, resp.Tickets.TotalTickets)
	})

	t.Run("invalid period", func(t *testing.T) {
		svc := NewMetricsService(new(MockSLAMetricRepository), new(MockTicketSummaryRepository), nil, zap.NewNop())

		_, err := svc.Dashboard(ctx, "July 2026")
		assert.Error(t, err)
	})
}
