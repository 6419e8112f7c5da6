package metrics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/metrics"
)

// RecordSLAMetricRequest records or overwrites one SLA measurement
type RecordSLAMetricRequest struct {
	ClientID    uuid.UUID       `json:"client_id" binding:"required"`
	Type        string          `json:"type" binding:"required"`
	Period      string          `json:"period" binding:"required"`
	TargetValue decimal.Decimal `json:"target_value" binding:"required"`
	ActualValue decimal.Decimal `json:"actual_value"`
	Notes       string          `json:"notes"`
}

// RecordTicketSummaryRequest records or overwrites one month's ticket volume
type RecordTicketSummaryRequest struct {
	ClientID           uuid.UUID       `json:"client_id" binding:"required"`
	Period             string          `json:"period" binding:"required"`
	TotalTickets       int             `json:"total_tickets"`
	ResolvedTickets    int             `json:"resolved_tickets"`
	EscalatedTickets   int             `json:"escalated_tickets"`
	AvgResolutionHours decimal.Decimal `json:"avg_resolution_hours"`
	SLABreaches        int             `json:"sla_breaches"`
}

// MetricsRangeFilter bounds a per-client metrics query by period
type MetricsRangeFilter struct {
	FromPeriod string `form:"from_period"`
	ToPeriod   string `form:"to_period"`
}

// SLAMetricResponse is the response shape of one SLA measurement
type SLAMetricResponse struct {
	ID          uuid.UUID       `json:"id"`
	ClientID    uuid.UUID       `json:"client_id"`
	Type        string          `json:"type"`
	Period      string          `json:"period"`
	TargetValue decimal.Decimal `json:"target_value"`
	ActualValue decimal.Decimal `json:"actual_value"`
	Achievement decimal.Decimal `json:"achievement"`
	Breached    bool            `json:"breached"`
	MeasuredAt  time.Time       `json:"measured_at"`
	Notes       string          `json:"notes,omitempty"`
}

// TicketSummaryResponse is the response shape of one month's ticket volume
type TicketSummaryResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ClientID           uuid.UUID       `json:"client_id"`
	Period             string          `json:"period"`
	TotalTickets       int             `json:"total_tickets"`
	ResolvedTickets    int             `json:"resolved_tickets"`
	EscalatedTickets   int             `json:"escalated_tickets"`
	AvgResolutionHours decimal.Decimal `json:"avg_resolution_hours"`
	SLABreaches        int             `json:"sla_breaches"`
	ResolutionRate     decimal.Decimal `json:"resolution_rate"`
	RecordedAt         time.Time       `json:"recorded_at"`
}

// ToSLAMetricResponse maps a domain metric to its response shape
func ToSLAMetricResponse(m *metrics.SLAMetric) SLAMetricResponse {
	return SLAMetricResponse{
		ID:          m.ID,
		ClientID:    m.ClientID,
		Type:        string(m.Type),
		Period:      m.Period,
		TargetValue: m.TargetValue,
		ActualValue: m.ActualValue,
		Achievement: m.Achievement(),
		Breached:    m.IsBreached(),
		MeasuredAt:  m.MeasuredAt,
		Notes:       m.Notes,
	}
}

// ToSLAMetricResponses maps a slice of domain metrics
func ToSLAMetricResponses(items []metrics.SLAMetric) []SLAMetricResponse {
	out := make([]SLAMetricResponse, 0, len(items))
	for i := range items {
		out = append(out, ToSLAMetricResponse(&items[i]))
	}
	return out
}

// ToTicketSummaryResponse maps a domain summary to its response shape
func ToTicketSummaryResponse(s *metrics.TicketSummary) TicketSummaryResponse {
	return TicketSummaryResponse{
		ID:                 s.ID,
		ClientID:           s.ClientID,
		Period:             s.Period,
		TotalTickets:       s.TotalTickets,
		ResolvedTickets:    s.ResolvedTickets,
		EscalatedTickets:   s.EscalatedTickets,
		AvgResolutionHours: s.AvgResolutionHours,
		SLABreaches:        s.SLABreaches,
		ResolutionRate:     s.ResolutionRate(),
		RecordedAt:         s.RecordedAt,
	}
}

// ToTicketSummaryResponses maps a slice of domain summaries
func ToTicketSummaryResponses(items []metrics.TicketSummary) []TicketSummaryResponse {
	out := make([]TicketSummaryResponse, 0, len(items))
	for i := range items {
		out = append(out, ToTicketSummaryResponse(&items[i]))
	}
	return out
}

// SLATypeAggregate rolls one metric type up across clients for one month
type SLATypeAggregate struct {
	Type           string          `json:"type"`
	Measurements   int             `json:"measurements"`
	AvgAchievement decimal.Decimal `json:"avg_achievement"`
	Breaches       int             `json:"breaches"`
}

// TicketTotals rolls ticket volume up across clients for one month
type TicketTotals struct {
	TotalTickets       int             `json:"total_tickets"`
	ResolvedTickets    int             `json:"resolved_tickets"`
	EscalatedTickets   int             `json:"escalated_tickets"`
	SLABreaches        int             `json:"sla_breaches"`
	AvgResolutionHours decimal.Decimal `json:"avg_resolution_hours"`
}

// PeriodDashboardResponse is the cross-client view of one calendar month
type PeriodDashboardResponse struct {
	Period  string             `json:"period"`
	Clients int                `json:"clients"`
	SLA     []SLATypeAggregate `json:"sla"`
	Tickets TicketTotals       `json:"tickets"`
}
