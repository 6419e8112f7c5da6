package contract

import "github.com/mssp/backend/internal/domain/shared"

// Event types
const (
	EventContractCreated       = "contract.created"
	EventContractStatusChanged = "contract.status_changed"
)

// ContractCreatedEvent is raised when a contract is drafted
type ContractCreatedEvent struct {
	shared.BaseDomainEvent
	ContractNumber string `json:"contract_number"`
}

// NewContractCreatedEvent creates a contract created event
func NewContractCreatedEvent(c *Contract) *ContractCreatedEvent {
	return &ContractCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventContractCreated, "Contract", c.ID),
		ContractNumber:  c.ContractNumber,
	}
}

// ContractStatusChangedEvent is raised on lifecycle transitions
type ContractStatusChangedEvent struct {
	shared.BaseDomainEvent
	Status ContractStatus `json:"status"`
}

// NewContractStatusChangedEvent creates a status changed event
func NewContractStatusChangedEvent(c *Contract, status ContractStatus) *ContractStatusChangedEvent {
	return &ContractStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventContractStatusChanged, "Contract", c.ID),
		Status:          status,
	}
}
