package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mssp/backend/internal/domain/catalog"
)

// ServiceModel is the persistence model for the catalog Service aggregate
// root. The scope template is stored as a JSONB field list.
type ServiceModel struct {
	AggregateModel
	Name              string                  `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description       string                  `gorm:"type:text"`
	Category          catalog.ServiceCategory `gorm:"type:varchar(50);not null;index"`
	DeliveryModel     catalog.DeliveryModel   `gorm:"type:varchar(30);not null"`
	BasePrice         decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	ScopeTemplateJSON string                  `gorm:"column:scope_template;type:jsonb;default:'[]'"`
	IsActive          bool                    `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ServiceModel) TableName() string {
	return "services"
}

// ToDomain converts the persistence model to a domain Service entity.
func (m *ServiceModel) ToDomain() *catalog.Service {
	svc := &catalog.Service{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		Category:          m.Category,
		DeliveryModel:     m.DeliveryModel,
		BasePrice:         m.BasePrice,
		ScopeTemplate:     catalog.ScopeTemplate{},
		IsActive:          m.IsActive,
	}

	if m.ScopeTemplateJSON != "" && m.ScopeTemplateJSON != "[]" {
		var template catalog.ScopeTemplate
		if err := json.Unmarshal([]byte(m.ScopeTemplateJSON), &template); err != nil {
			modelLogger.Warn("failed to parse scope_template JSON",
				zap.String("service_name", m.Name),
				zap.Error(err))
		} else {
			svc.ScopeTemplate = template
		}
	}

	return svc
}

// FromDomain populates the persistence model from a domain Service entity.
func (m *ServiceModel) FromDomain(s *catalog.Service) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.Description = s.Description
	m.Category = s.Category
	m.DeliveryModel = s.DeliveryModel
	m.BasePrice = s.BasePrice
	m.IsActive = s.IsActive

	if jsonBytes, err := json.Marshal(s.ScopeTemplate); err == nil && s.ScopeTemplate != nil {
		m.ScopeTemplateJSON = string(jsonBytes)
	} else {
		m.ScopeTemplateJSON = "[]"
	}
}

// ServiceModelFromDomain creates a new persistence model from a domain Service entity.
func ServiceModelFromDomain(s *catalog.Service) *ServiceModel {
	m := &ServiceModel{}
	m.FromDomain(s)
	return m
}
