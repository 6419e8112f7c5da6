package metrics

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/shared"
)

// MetricType identifies which service level a metric measures
type MetricType string

const (
	MetricUptime         MetricType = "uptime"
	MetricResponseTime   MetricType = "response_time"
	MetricResolutionTime MetricType = "resolution_time"
)

// IsValid checks if the metric type is valid
func (t MetricType) IsValid() bool {
	switch t {
	case MetricUptime, MetricResponseTime, MetricResolutionTime:
		return true
	}
	return false
}

// periodRegex matches a calendar month in YYYY-MM form
var periodRegex = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])$`)

// ValidatePeriod checks a reporting period string
func ValidatePeriod(period string) error {
	if !periodRegex.MatchString(period) {
		return shared.NewDomainError("INVALID_PERIOD", "Period must be in YYYY-MM format")
	}
	return nil
}

// SLAMetric records the target and the actual for one client, one metric
// type, one calendar month. One row per (client, type, period); recording
// the same triple again overwrites the actual.
type SLAMetric struct {
	shared.BaseAggregateRoot
	ClientID    uuid.UUID
	Type        MetricType
	Period      string
	TargetValue decimal.Decimal
	ActualValue decimal.Decimal
	MeasuredAt  time.Time
	Notes       string
}

// NewSLAMetric creates a metric row
func NewSLAMetric(clientID uuid.UUID, metricType MetricType, period string, target, actual decimal.Decimal) (*SLAMetric, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID is required")
	}
	if !metricType.IsValid() {
		return nil, shared.NewDomainError("INVALID_METRIC_TYPE", "Unknown metric type: "+string(metricType))
	}
	if err := ValidatePeriod(period); err != nil {
		return nil, err
	}
	if !target.IsPositive() {
		return nil, shared.NewDomainError("INVALID_TARGET", "Target value must be positive")
	}
	if actual.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ACTUAL", "Actual value cannot be negative")
	}

	return &SLAMetric{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Type:              metricType,
		Period:            period,
		TargetValue:       target,
		ActualValue:       actual,
		MeasuredAt:        time.Now(),
	}, nil
}

// RecordActual overwrites the measured value
func (m *SLAMetric) RecordActual(actual decimal.Decimal) error {
	if actual.IsNegative() {
		return shared.NewDomainError("INVALID_ACTUAL", "Actual value cannot be negative")
	}
	m.ActualValue = actual
	m.MeasuredAt = time.Now()
	m.IncrementVersion()
	return nil
}

// SetNotes sets free-form notes
func (m *SLAMetric) SetNotes(notes string) {
	m.Notes = notes
	m.IncrementVersion()
}

// Achievement is actual over target as a percentage. For time-based
// metrics lower is better, so the ratio inverts: hitting half the target
// response time scores 200.
func (m *SLAMetric) Achievement() decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	switch m.Type {
	case MetricResponseTime, MetricResolutionTime:
		if m.ActualValue.IsZero() {
			return hundred
		}
		return m.TargetValue.Div(m.ActualValue).Mul(hundred).Round(2)
	default:
		return m.ActualValue.Div(m.TargetValue).Mul(hundred).Round(2)
	}
}

// IsBreached reports whether the actual missed the target
func (m *SLAMetric) IsBreached() bool {
	switch m.Type {
	case MetricResponseTime, MetricResolutionTime:
		return m.ActualValue.GreaterThan(m.TargetValue)
	default:
		return m.ActualValue.LessThan(m.TargetValue)
	}
}
