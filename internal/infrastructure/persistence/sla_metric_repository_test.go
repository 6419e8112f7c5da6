package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mssp/backend/internal/domain/metrics"
)

// setupMetricsTestDB creates an in-memory SQLite database for testing
func setupMetricsTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE sla_metrics (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			client_id TEXT NOT NULL,
			type TEXT NOT NULL,
			period TEXT NOT NULL,
			target_value NUMERIC NOT NULL,
			actual_value NUMERIC NOT NULL DEFAULT 0,
			measured_at DATETIME NOT NULL,
			notes TEXT,
			UNIQUE(client_id, type, period)
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE ticket_summaries (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			client_id TEXT NOT NULL,
			period TEXT NOT NULL,
			total_tickets INTEGER NOT NULL DEFAULT 0,
			resolved_tickets INTEGER NOT NULL DEFAULT 0,
			escalated_tickets INTEGER NOT NULL DEFAULT 0,
			avg_resolution_hours NUMERIC NOT NULL DEFAULT 0,
			sla_breaches INTEGER NOT NULL DEFAULT 0,
			recorded_at DATETIME NOT NULL,
			UNIQUE(client_id, period)
		)
	`).Error
	require.NoError(t, err)

	return db
}

func TestGormSLAMetricRepository_Upsert(t *testing.T) {
	db := setupMetricsTestDB(t)
	repo := NewGormSLAMetricRepository(db)
	ctx := context.Background()

	clientID := uuid.New()
	m, err := metrics.NewSLAMetric(clientID, metrics.MetricUptime, "2026-07",
		decimal.NewFromFloat(99.9), decimal.NewFromFloat(99.95))
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, m))

	t.Run("recording the same key overwrites the earlier row", func(t *testing.T) {
		replacement, err := metrics.NewSLAMetric(clientID, metrics.MetricUptime, "2026-07",
			decimal.NewFromFloat(99.9), decimal.NewFromFloat(98.2))
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, replacement))

		items, err := repo.FindByClient(ctx, clientID, "", "")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].ActualValue.Equal(decimal.NewFromFloat(98.2)))
		assert.True(t, items[0].IsBreached())
	})

	t.Run("period bounds filter the history", func(t *testing.T) {
		earlier, err := metrics.NewSLAMetric(clientID, metrics.MetricUptime, "2026-05",
			decimal.NewFromFloat(99.9), decimal.NewFromFloat(99.9))
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, earlier))

		items, err := repo.FindByClient(ctx, clientID, "2026-06", "2026-12")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "2026-07", items[0].Period)
	})
}

func TestGormTicketSummaryRepository_Upsert(t *testing.T) {
	db := setupMetricsTestDB(t)
	repo := NewGormTicketSummaryRepository(db)
	ctx := context.Background()

	clientID := uuid.New()
	summary, err := metrics.NewTicketSummary(clientID, "2026-07", 40, 36, 2, decimal.NewFromFloat(5.5), 1)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, summary))

	replacement, err := metrics.NewTicketSummary(clientID, "2026-07", 45, 41, 2, decimal.NewFromFloat(5.1), 1)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, replacement))

	stored, err := repo.FindByClientPeriod(ctx, clientID, "2026-07")
	require.NoError(t, err)
	assert.Equal(t, 45, stored.TotalTickets)
	assert.Equal(t, 41, stored.ResolvedTickets)

	items, err := repo.FindByClient(ctx, clientID, "", "")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
