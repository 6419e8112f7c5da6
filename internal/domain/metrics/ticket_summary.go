package metrics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/shared"
)

// TicketSummary aggregates a client's ticket volume for one calendar
// month. One row per (client, period); re-recording overwrites the counts.
type TicketSummary struct {
	shared.BaseAggregateRoot
	ClientID           uuid.UUID
	Period             string
	TotalTickets       int
	ResolvedTickets    int
	EscalatedTickets   int
	AvgResolutionHours decimal.Decimal
	SLABreaches        int
	RecordedAt         time.Time
}

// NewTicketSummary creates a summary row
func NewTicketSummary(clientID uuid.UUID, period string, total, resolved, escalated int, avgResolutionHours decimal.Decimal, slaBreaches int) (*TicketSummary, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID is required")
	}
	if err := ValidatePeriod(period); err != nil {
		return nil, err
	}
	if total < 0 || resolved < 0 || escalated < 0 || slaBreaches < 0 {
		return nil, shared.NewDomainError("INVALID_COUNT", "Ticket counts cannot be negative")
	}
	if resolved > total {
		return nil, shared.NewDomainError("INVALID_COUNT", "Resolved tickets cannot exceed the total")
	}
	if avgResolutionHours.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DURATION", "Average resolution time cannot be negative")
	}

	return &TicketSummary{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		ClientID:           clientID,
		Period:             period,
		TotalTickets:       total,
		ResolvedTickets:    resolved,
		EscalatedTickets:   escalated,
		AvgResolutionHours: avgResolutionHours,
		SLABreaches:        slaBreaches,
		RecordedAt:         time.Now(),
	}, nil
}

// UpdateCounts overwrites the recorded volume
func (s *TicketSummary) UpdateCounts(total, resolved, escalated int, avgResolutionHours decimal.Decimal, slaBreaches int) error {
	if total < 0 || resolved < 0 || escalated < 0 || slaBreaches < 0 {
		return shared.NewDomainError("INVALID_COUNT", "Ticket counts cannot be negative")
	}
	if resolved > total {
		return shared.NewDomainError("INVALID_COUNT", "Resolved tickets cannot exceed the total")
	}
	if avgResolutionHours.IsNegative() {
		return shared.NewDomainError("INVALID_DURATION", "Average resolution time cannot be negative")
	}
	s.TotalTickets = total
	s.ResolvedTickets = resolved
	s.EscalatedTickets = escalated
	s.AvgResolutionHours = avgResolutionHours
	s.SLABreaches = slaBreaches
	s.RecordedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// ResolutionRate is resolved over total as a percentage
func (s *TicketSummary) ResolutionRate() decimal.Decimal {
	if s.TotalTickets == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.ResolvedTickets)).
		Div(decimal.NewFromInt(int64(s.TotalTickets))).
		Mul(decimal.NewFromInt(100)).Round(2)
}
