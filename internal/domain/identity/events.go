package identity

import (
	"github.com/mssp/backend/internal/domain/shared"
)

const (
	EventUserCreated     = "identity.user.created"
	EventUserDeactivated = "identity.user.deactivated"
)

// UserCreatedEvent is emitted when a user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// NewUserCreatedEvent creates a user created event
func NewUserCreatedEvent(u *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserCreated, "User", u.ID),
		Username:        u.Username,
		Role:            u.Role,
	}
}

// UserDeactivatedEvent is emitted when a user is deactivated
type UserDeactivatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewUserDeactivatedEvent creates a user deactivated event
func NewUserDeactivatedEvent(u *User) *UserDeactivatedEvent {
	return &UserDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventUserDeactivated, "User", u.ID),
		Username:        u.Username,
	}
}
