package client

import "github.com/mssp/backend/internal/domain/shared"

// Event types
const (
	EventClientCreated       = "client.created"
	EventClientStatusChanged = "client.status_changed"
)

// ClientCreatedEvent is raised when a client record is created
type ClientCreatedEvent struct {
	shared.BaseDomainEvent
	CompanyName string `json:"company_name"`
}

// NewClientCreatedEvent creates a client created event
func NewClientCreatedEvent(c *Client) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventClientCreated, "Client", c.ID),
		CompanyName:     c.CompanyName,
	}
}

// ClientStatusChangedEvent is raised on lifecycle transitions
type ClientStatusChangedEvent struct {
	shared.BaseDomainEvent
	Status ClientStatus `json:"status"`
}

// NewClientStatusChangedEvent creates a status changed event
func NewClientStatusChangedEvent(c *Client, status ClientStatus) *ClientStatusChangedEvent {
	return &ClientStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventClientStatusChanged, "Client", c.ID),
		Status:          status,
	}
}
