package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/shared"
)

// ServiceCategory groups catalog entries by practice area
type ServiceCategory string

const (
	CategorySecurityOperations ServiceCategory = "security_operations"
	CategoryEndpoint           ServiceCategory = "endpoint"
	CategoryNetwork            ServiceCategory = "network"
	CategoryInfrastructure     ServiceCategory = "infrastructure"
	CategoryCompliance         ServiceCategory = "compliance"
	CategoryConsulting         ServiceCategory = "consulting"
)

// IsValid checks if the category is valid
func (c ServiceCategory) IsValid() bool {
	switch c {
	case CategorySecurityOperations, CategoryEndpoint, CategoryNetwork,
		CategoryInfrastructure, CategoryCompliance, CategoryConsulting:
		return true
	}
	return false
}

// DeliveryModel describes how the service is delivered
type DeliveryModel string

const (
	DeliveryServerless     DeliveryModel = "serverless"
	DeliveryOnPremEngineer DeliveryModel = "on_prem_engineer"
	DeliveryHybrid         DeliveryModel = "hybrid"
	DeliveryCloud          DeliveryModel = "cloud"
)

// IsValid checks if the delivery model is valid
func (m DeliveryModel) IsValid() bool {
	switch m {
	case DeliveryServerless, DeliveryOnPremEngineer, DeliveryHybrid, DeliveryCloud:
		return true
	}
	return false
}

// Service is one entry in the managed-services catalog. Its scope template
// declares the fields a service scope must fill in when the service is
// sold under a contract.
type Service struct {
	shared.BaseAggregateRoot
	Name          string
	Description   string
	Category      ServiceCategory
	DeliveryModel DeliveryModel
	BasePrice     decimal.Decimal
	ScopeTemplate ScopeTemplate
	IsActive      bool
}

// NewService creates an active catalog entry
func NewService(name string, category ServiceCategory, deliveryModel DeliveryModel, basePrice decimal.Decimal) (*Service, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Service name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Service name cannot exceed 200 characters")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown service category: "+string(category))
	}
	if !deliveryModel.IsValid() {
		return nil, shared.NewDomainError("INVALID_DELIVERY_MODEL", "Unknown delivery model: "+string(deliveryModel))
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}

	return &Service{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Category:          category,
		DeliveryModel:     deliveryModel,
		BasePrice:         basePrice,
		IsActive:          true,
	}, nil
}

// Update changes the catalog entry's descriptive and commercial fields
func (s *Service) Update(name, description string, category ServiceCategory, deliveryModel DeliveryModel, basePrice decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Service name is required")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown service category: "+string(category))
	}
	if !deliveryModel.IsValid() {
		return shared.NewDomainError("INVALID_DELIVERY_MODEL", "Unknown delivery model: "+string(deliveryModel))
	}
	if basePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	s.Name = name
	s.Description = description
	s.Category = category
	s.DeliveryModel = deliveryModel
	s.BasePrice = basePrice
	s.IncrementVersion()
	return nil
}

// SetScopeTemplate replaces the scope definition template after validating it
func (s *Service) SetScopeTemplate(template ScopeTemplate) error {
	if err := template.Validate(); err != nil {
		return err
	}
	s.ScopeTemplate = template
	s.IncrementVersion()
	return nil
}

// Activate makes the service sellable again
func (s *Service) Activate() error {
	if s.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Service is already active")
	}
	s.IsActive = true
	s.IncrementVersion()
	return nil
}

// Deactivate withdraws the service from the catalog. Existing scopes are
// unaffected.
func (s *Service) Deactivate() error {
	if !s.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Service is already inactive")
	}
	s.IsActive = false
	s.IncrementVersion()
	return nil
}
