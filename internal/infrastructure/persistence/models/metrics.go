package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/metrics"
)

// SLAMetricModel is the persistence model for the SLAMetric aggregate root.
// One row exists per (client, type, period).
type SLAMetricModel struct {
	AggregateModel
	ClientID    uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_sla_client_type_period,priority:1"`
	Type        metrics.MetricType `gorm:"type:varchar(30);not null;uniqueIndex:idx_sla_client_type_period,priority:2"`
	Period      string             `gorm:"type:varchar(7);not null;uniqueIndex:idx_sla_client_type_period,priority:3"`
	TargetValue decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	ActualValue decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	MeasuredAt  time.Time          `gorm:"type:timestamptz;not null"`
	Notes       string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SLAMetricModel) TableName() string {
	return "sla_metrics"
}

// ToDomain converts the persistence model to a domain SLAMetric entity.
func (m *SLAMetricModel) ToDomain() *metrics.SLAMetric {
	return &metrics.SLAMetric{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ClientID:          m.ClientID,
		Type:              m.Type,
		Period:            m.Period,
		TargetValue:       m.TargetValue,
		ActualValue:       m.ActualValue,
		MeasuredAt:        m.MeasuredAt,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain SLAMetric entity.
func (m *SLAMetricModel) FromDomain(s *metrics.SLAMetric) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.ClientID = s.ClientID
	m.Type = s.Type
	m.Period = s.Period
	m.TargetValue = s.TargetValue
	m.ActualValue = s.ActualValue
	m.MeasuredAt = s.MeasuredAt
	m.Notes = s.Notes
}

// SLAMetricModelFromDomain creates a new persistence model from a domain SLAMetric entity.
func SLAMetricModelFromDomain(s *metrics.SLAMetric) *SLAMetricModel {
	m := &SLAMetricModel{}
	m.FromDomain(s)
	return m
}

// TicketSummaryModel is the persistence model for the TicketSummary
// aggregate root. One row exists per (client, period).
type TicketSummaryModel struct {
	AggregateModel
	ClientID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_ticket_client_period,priority:1"`
	Period             string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_ticket_client_period,priority:2"`
	TotalTickets       int             `gorm:"not null;default:0"`
	ResolvedTickets    int             `gorm:"not null;default:0"`
	EscalatedTickets   int             `gorm:"not null;default:0"`
	AvgResolutionHours decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	SLABreaches        int             `gorm:"column:sla_breaches;not null;default:0"`
	RecordedAt         time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for GORM
func (TicketSummaryModel) TableName() string {
	return "ticket_summaries"
}

// ToDomain converts the persistence model to a domain TicketSummary entity.
func (m *TicketSummaryModel) ToDomain() *metrics.TicketSummary {
	return &metrics.TicketSummary{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		ClientID:           m.ClientID,
		Period:             m.Period,
		TotalTickets:       m.TotalTickets,
		ResolvedTickets:    m.ResolvedTickets,
		EscalatedTickets:   m.EscalatedTickets,
		AvgResolutionHours: m.AvgResolutionHours,
		SLABreaches:        m.SLABreaches,
		RecordedAt:         m.RecordedAt,
	}
}

// FromDomain populates the persistence model from a domain TicketSummary entity.
func (m *TicketSummaryModel) FromDomain(s *metrics.TicketSummary) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.ClientID = s.ClientID
	m.Period = s.Period
	m.TotalTickets = s.TotalTickets
	m.ResolvedTickets = s.ResolvedTickets
	m.EscalatedTickets = s.EscalatedTickets
	m.AvgResolutionHours = s.AvgResolutionHours
	m.SLABreaches = s.SLABreaches
	m.RecordedAt = s.RecordedAt
}

// TicketSummaryModelFromDomain creates a new persistence model from a domain TicketSummary entity.
func TicketSummaryModelFromDomain(s *metrics.TicketSummary) *TicketSummaryModel {
	m := &TicketSummaryModel{}
	m.FromDomain(s)
	return m
}
