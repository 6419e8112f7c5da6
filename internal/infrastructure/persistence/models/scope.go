package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mssp/backend/internal/domain/scope"
)

// ServiceScopeModel is the persistence model for the ServiceScope aggregate
// root. The validated detail map is stored as JSONB.
type ServiceScopeModel struct {
	AggregateModel
	ContractID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	ServiceID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	DetailsJSON     string            `gorm:"column:details;type:jsonb;default:'{}'"`
	SAFStartDate    *time.Time        `gorm:"column:saf_start_date;type:date"`
	SAFEndDate      *time.Time        `gorm:"column:saf_end_date;type:date"`
	SOCHandoverDate *time.Time        `gorm:"column:soc_handover_date;type:date"`
	Status          scope.ScopeStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes           string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ServiceScopeModel) TableName() string {
	return "service_scopes"
}

// ToDomain converts the persistence model to a domain ServiceScope entity.
func (m *ServiceScopeModel) ToDomain() *scope.ServiceScope {
	s := &scope.ServiceScope{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ContractID:        m.ContractID,
		ServiceID:         m.ServiceID,
		Details:           make(map[string]interface{}),
		SAFStartDate:      m.SAFStartDate,
		SAFEndDate:        m.SAFEndDate,
		SOCHandoverDate:   m.SOCHandoverDate,
		Status:            m.Status,
		Notes:             m.Notes,
	}

	if m.DetailsJSON != "" && m.DetailsJSON != "{}" {
		var details map[string]interface{}
		if err := json.Unmarshal([]byte(m.DetailsJSON), &details); err != nil {
			modelLogger.Warn("failed to parse details JSON",
				zap.String("scope_id", m.ID.String()),
				zap.Error(err))
		} else {
			s.Details = details
		}
	}

	return s
}

// FromDomain populates the persistence model from a domain ServiceScope entity.
func (m *ServiceScopeModel) FromDomain(s *scope.ServiceScope) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.ContractID = s.ContractID
	m.ServiceID = s.ServiceID
	m.SAFStartDate = s.SAFStartDate
	m.SAFEndDate = s.SAFEndDate
	m.SOCHandoverDate = s.SOCHandoverDate
	m.Status = s.Status
	m.Notes = s.Notes

	if jsonBytes, err := json.Marshal(s.Details); err == nil && s.Details != nil {
		m.DetailsJSON = string(jsonBytes)
	} else {
		m.DetailsJSON = "{}"
	}
}

// ServiceScopeModelFromDomain creates a new persistence model from a domain ServiceScope entity.
func ServiceScopeModelFromDomain(s *scope.ServiceScope) *ServiceScopeModel {
	m := &ServiceScopeModel{}
	m.FromDomain(s)
	return m
}
