package hardware

import (
	"time"

	"github.com/google/uuid"

	"github.com/mssp/backend/internal/domain/shared"
)

// AssignmentStatus represents the state of a client hardware assignment
type AssignmentStatus string

const (
	AssignmentActive   AssignmentStatus = "active"
	AssignmentReturned AssignmentStatus = "returned"
)

// ClientHardwareAssignment places one asset at one client, optionally tied
// to a service scope
type ClientHardwareAssignment struct {
	shared.BaseEntity
	AssetID        uuid.UUID
	ClientID       uuid.UUID
	ServiceScopeID *uuid.UUID
	Location       string
	AssignedAt     time.Time
	ReturnedAt     *time.Time
	Status         AssignmentStatus
}

// NewClientHardwareAssignment opens an active assignment
func NewClientHardwareAssignment(assetID, clientID uuid.UUID, serviceScopeID *uuid.UUID, location string, assignedAt time.Time) (*ClientHardwareAssignment, error) {
	if assetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ASSET", "Asset ID is required")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID is required")
	}
	if assignedAt.IsZero() {
		assignedAt = time.Now()
	}

	return &ClientHardwareAssignment{
		BaseEntity:     shared.NewBaseEntity(),
		AssetID:        assetID,
		ClientID:       clientID,
		ServiceScopeID: serviceScopeID,
		Location:       location,
		AssignedAt:     assignedAt,
		Status:         AssignmentActive,
	}, nil
}

// Close marks the assignment returned
func (a *ClientHardwareAssignment) Close(returnedAt time.Time) error {
	if a.Status != AssignmentActive {
		return shared.NewDomainError("INVALID_STATE", "Assignment is already closed")
	}
	if returnedAt.Before(a.AssignedAt) {
		return shared.NewDomainError("INVALID_DATES", "Return date cannot precede the assignment date")
	}
	a.Status = AssignmentReturned
	a.ReturnedAt = &returnedAt
	a.UpdatedAt = time.Now()
	return nil
}
