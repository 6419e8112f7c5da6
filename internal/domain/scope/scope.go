package scope

import (
	"time"

	"github.com/google/uuid"

	"github.com/mssp/backend/internal/domain/shared"
)

// ScopeStatus represents the lifecycle state of a service scope
type ScopeStatus string

const (
	StatusPending   ScopeStatus = "pending"
	StatusActive    ScopeStatus = "active"
	StatusCompleted ScopeStatus = "completed"
	StatusCancelled ScopeStatus = "cancelled"
)

// IsValid checks if the status is valid
func (s ScopeStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ServiceScope is one catalog service sold under one contract. Its detail
// map is validated against the owning service's scope template before it
// reaches this aggregate.
type ServiceScope struct {
	shared.BaseAggregateRoot
	ContractID      uuid.UUID
	ServiceID       uuid.UUID
	Details         map[string]interface{}
	SAFStartDate    *time.Time
	SAFEndDate      *time.Time
	SOCHandoverDate *time.Time
	Status          ScopeStatus
	Notes           string
}

// NewServiceScope creates a pending scope for a contract and service
func NewServiceScope(contractID, serviceID uuid.UUID, details map[string]interface{}) (*ServiceScope, error) {
	if contractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Contract ID is required")
	}
	if serviceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Service ID is required")
	}
	if details == nil {
		details = make(map[string]interface{})
	}

	return &ServiceScope{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ContractID:        contractID,
		ServiceID:         serviceID,
		Details:           details,
		Status:            StatusPending,
	}, nil
}

// SetDetails replaces the validated scope detail map wholesale
func (s *ServiceScope) SetDetails(details map[string]interface{}) error {
	if s.Status == StatusCompleted || s.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Closed scopes cannot be edited")
	}
	if details == nil {
		details = make(map[string]interface{})
	}
	s.Details = details
	s.IncrementVersion()
	return nil
}

// SetSAFDates records the service activation form window
func (s *ServiceScope) SetSAFDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return shared.NewDomainError("INVALID_DATES", "SAF end date cannot precede its start date")
	}
	s.SAFStartDate = start
	s.SAFEndDate = end
	s.IncrementVersion()
	return nil
}

// SetSOCHandoverDate records when the SOC took over monitoring
func (s *ServiceScope) SetSOCHandoverDate(date *time.Time) {
	s.SOCHandoverDate = date
	s.IncrementVersion()
}

// SetNotes sets free-form notes
func (s *ServiceScope) SetNotes(notes string) {
	s.Notes = notes
	s.IncrementVersion()
}

// Activate marks the scope as in delivery
func (s *ServiceScope) Activate() error {
	if s.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending scopes can be activated")
	}
	s.Status = StatusActive
	s.IncrementVersion()
	return nil
}

// Complete closes a delivered scope
func (s *ServiceScope) Complete() error {
	if s.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active scopes can be completed")
	}
	s.Status = StatusCompleted
	s.IncrementVersion()
	return nil
}

// Cancel abandons a pending or active scope
func (s *ServiceScope) Cancel() error {
	if s.Status != StatusPending && s.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only pending or active scopes can be cancelled")
	}
	s.Status = StatusCancelled
	s.IncrementVersion()
	return nil
}
