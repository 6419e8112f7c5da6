package customfield

import (
	"context"

	"github.com/google/uuid"
)

// DefinitionFilter represents list options for field definitions
type DefinitionFilter struct {
	EntityType      *EntityType
	IncludeInactive bool
	Page            int
	PageSize        int
}

// DefinitionRepository defines the persistence interface for field definitions
type DefinitionRepository interface {
	// FindByID returns the definition regardless of its active flag
	FindByID(ctx context.Context, id uuid.UUID) (*FieldDefinition, error)
	// FindByEntityTypeAndName looks a name up across active and inactive
	// definitions; inactive definitions keep their name reserved
	FindByEntityTypeAndName(ctx context.Context, entityType EntityType, name string) (*FieldDefinition, error)
	// FindByEntityType returns definitions ordered by display order then name
	FindByEntityType(ctx context.Context, entityType EntityType, includeInactive bool) ([]*FieldDefinition, error)
	// List returns a page of definitions plus the unpaged total
	List(ctx context.Context, filter DefinitionFilter) ([]*FieldDefinition, int64, error)
	Save(ctx context.Context, def *FieldDefinition) error
	// DeleteWithValues hard-deletes the definition together with every
	// value row stored under it, in one transaction
	DeleteWithValues(ctx context.Context, id uuid.UUID) error
	// Reorder applies new display orders for one entity type atomically
	Reorder(ctx context.Context, entityType EntityType, orders map[uuid.UUID]int) error
}

// ValueRepository defines the persistence interface for field values
type ValueRepository interface {
	FindByEntity(ctx context.Context, entityID uuid.UUID) ([]*FieldValue, error)
	FindByEntities(ctx context.Context, entityIDs []uuid.UUID) ([]*FieldValue, error)
	FindByDefinition(ctx context.Context, definitionID uuid.UUID) ([]*FieldValue, error)
	// UpsertAll writes every row in one transaction; an existing
	// (definition, entity) row is overwritten in place
	UpsertAll(ctx context.Context, values []*FieldValue) error
	DeleteByEntity(ctx context.Context, entityID uuid.UUID) error
}
