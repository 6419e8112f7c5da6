package contract

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/shared"
)

// ContractStatus represents the lifecycle state of a contract
type ContractStatus string

const (
	StatusDraft      ContractStatus = "draft"
	StatusActive     ContractStatus = "active"
	StatusExpired    ContractStatus = "expired"
	StatusTerminated ContractStatus = "terminated"
	StatusCancelled  ContractStatus = "cancelled"
)

// IsValid checks if the status is valid
func (s ContractStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusExpired, StatusTerminated, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible
func (s ContractStatus) IsTerminal() bool {
	return s == StatusExpired || s == StatusTerminated || s == StatusCancelled
}

// Contract is a service agreement with one client. Drafts can be edited
// freely; activation freezes the commercial terms and termination records
// when and why the agreement ended.
type Contract struct {
	shared.BaseAggregateRoot
	ClientID          uuid.UUID
	ContractNumber    string
	Name              string
	StartDate         time.Time
	EndDate           time.Time
	Value             decimal.Decimal
	AutoRenew         bool
	Status            ContractStatus
	TerminationDate   *time.Time
	TerminationReason string
	Notes             string
}

// NewContract creates a draft contract
func NewContract(clientID uuid.UUID, contractNumber, name string, startDate, endDate time.Time, value decimal.Decimal) (*Contract, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID is required")
	}
	if strings.TrimSpace(contractNumber) == "" {
		return nil, shared.NewDomainError("INVALID_CONTRACT_NUMBER", "Contract number is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Contract name is required")
	}
	if !endDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_DATES", "End date must be after start date")
	}
	if value.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VALUE", "Contract value cannot be negative")
	}

	c := &Contract{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		ContractNumber:    contractNumber,
		Name:              name,
		StartDate:         startDate,
		EndDate:           endDate,
		Value:             value,
		Status:            StatusDraft,
	}
	c.AddDomainEvent(NewContractCreatedEvent(c))
	return c, nil
}

// UpdateTerms changes the commercial terms. Only drafts can be edited.
func (c *Contract) UpdateTerms(name string, startDate, endDate time.Time, value decimal.Decimal, autoRenew bool) error {
	if c.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft contracts can be edited")
	}
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Contract name is required")
	}
	if !endDate.After(startDate) {
		return shared.NewDomainError("INVALID_DATES", "End date must be after start date")
	}
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_VALUE", "Contract value cannot be negative")
	}
	c.Name = name
	c.StartDate = startDate
	c.EndDate = endDate
	c.Value = value
	c.AutoRenew = autoRenew
	c.IncrementVersion()
	return nil
}

// SetNotes sets free-form notes
func (c *Contract) SetNotes(notes string) {
	c.Notes = notes
	c.IncrementVersion()
}

// Activate puts a draft contract into force
func (c *Contract) Activate() error {
	if c.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft contracts can be activated")
	}
	c.Status = StatusActive
	c.IncrementVersion()
	c.AddDomainEvent(NewContractStatusChangedEvent(c, StatusActive))
	return nil
}

// Cancel abandons a draft before it ever takes effect
func (c *Contract) Cancel() error {
	if c.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft contracts can be cancelled")
	}
	c.Status = StatusCancelled
	c.IncrementVersion()
	c.AddDomainEvent(NewContractStatusChangedEvent(c, StatusCancelled))
	return nil
}

// Terminate ends an active contract early, recording when and why
func (c *Contract) Terminate(date time.Time, reason string) error {
	if c.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active contracts can be terminated")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_REASON", "Termination reason is required")
	}
	if date.Before(c.StartDate) {
		return shared.NewDomainError("INVALID_DATES", "Termination date cannot precede the start date")
	}
	c.Status = StatusTerminated
	c.TerminationDate = &date
	c.TerminationReason = reason
	c.IncrementVersion()
	c.AddDomainEvent(NewContractStatusChangedEvent(c, StatusTerminated))
	return nil
}

// MarkExpired flags an active contract whose end date has passed
func (c *Contract) MarkExpired(now time.Time) error {
	if c.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active contracts can expire")
	}
	if now.Before(c.EndDate) {
		return shared.NewDomainError("INVALID_STATE", "Contract end date has not passed yet")
	}
	c.Status = StatusExpired
	c.IncrementVersion()
	c.AddDomainEvent(NewContractStatusChangedEvent(c, StatusExpired))
	return nil
}

// ExpiresWithin reports whether an active contract ends inside the window
func (c *Contract) ExpiresWithin(now time.Time, days int) bool {
	if c.Status != StatusActive {
		return false
	}
	cutoff := now.AddDate(0, 0, days)
	return !c.EndDate.After(cutoff)
}
