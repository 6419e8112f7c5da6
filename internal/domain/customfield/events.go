package customfield

import (
	"github.com/google/uuid"

	"github.com/mssp/backend/internal/domain/shared"
)

// Event types
const (
	EventDefinitionCreated     = "customfield.definition.created"
	EventDefinitionDeactivated = "customfield.definition.deactivated"
	EventDefinitionDeleted     = "customfield.definition.deleted"
	EventValuesChanged         = "customfield.values.changed"
)

// DefinitionCreatedEvent is raised when an admin creates a field definition
type DefinitionCreatedEvent struct {
	shared.BaseDomainEvent
	EntityType EntityType `json:"entity_type"`
	Name       string     `json:"name"`
	FieldType  FieldType  `json:"field_type"`
}

// NewDefinitionCreatedEvent creates a definition created event
func NewDefinitionCreatedEvent(def *FieldDefinition) *DefinitionCreatedEvent {
	return &DefinitionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventDefinitionCreated, "FieldDefinition", def.ID),
		EntityType:      def.EntityType,
		Name:            def.Name,
		FieldType:       def.FieldType,
	}
}

// DefinitionDeactivatedEvent is raised when a definition is soft-removed
type DefinitionDeactivatedEvent struct {
	shared.BaseDomainEvent
	EntityType EntityType `json:"entity_type"`
	Name       string     `json:"name"`
}

// NewDefinitionDeactivatedEvent creates a definition deactivated event
func NewDefinitionDeactivatedEvent(def *FieldDefinition) *DefinitionDeactivatedEvent {
	return &DefinitionDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventDefinitionDeactivated, "FieldDefinition", def.ID),
		EntityType:      def.EntityType,
		Name:            def.Name,
	}
}

// ValuesChangedEvent is raised after a batch of values is written for an entity
type ValuesChangedEvent struct {
	shared.BaseDomainEvent
	EntityType EntityType `json:"entity_type"`
	FieldNames []string   `json:"field_names"`
}

// NewValuesChangedEvent creates a values changed event for a host entity
func NewValuesChangedEvent(entityType EntityType, entityID uuid.UUID, fieldNames []string) *ValuesChangedEvent {
	return &ValuesChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventValuesChanged, "FieldValue", entityID),
		EntityType:      entityType,
		FieldNames:      fieldNames,
	}
}
