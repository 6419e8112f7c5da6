package customfield

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mssp/backend/internal/domain/customfield"
	"github.com/mssp/backend/internal/domain/shared"
)

// ValueService reads and writes custom-field values for host entities.
// Writes always run through validation first; a batch of rows is persisted
// in one transaction so a mid-batch failure leaves nothing behind.
type ValueService struct {
	defRepo   customfield.DefinitionRepository
	valueRepo customfield.ValueRepository
	cache     DefinitionCache
	logger    *zap.Logger
}

// NewValueService creates a new ValueService. The cache may be nil.
func NewValueService(
	defRepo customfield.DefinitionRepository,
	valueRepo customfield.ValueRepository,
	cache DefinitionCache,
	logger *zap.Logger,
) *ValueService {
	return &ValueService{
		defRepo:   defRepo,
		valueRepo: valueRepo,
		cache:     cache,
		logger:    logger,
	}
}

// Validate checks a raw custom-field map against the active definitions of
// one entity type without persisting anything
func (s *ValueService) Validate(ctx context.Context, entityType customfield.EntityType, data map[string]interface{}) (map[string]interface{}, error) {
	defs, err := s.activeDefinitions(ctx, entityType)
	if err != nil {
		return nil, err
	}
	return customfield.ValidateValues(defs, data)
}

// SaveValues validates the raw map and upserts one row per supplied key,
// all inside one transaction. Keys absent from the map keep their stored
// values; the last write wins per (definition, entity) pair.
func (s *ValueService) SaveValues(ctx context.Context, entityType customfield.EntityType, entityID uuid.UUID, data map[string]interface{}) error {
	defs, err := s.activeDefinitions(ctx, entityType)
	if err != nil {
		return err
	}

	clean, err := customfield.ValidateValues(defs, data)
	if err != nil {
		return err
	}
	if len(clean) == 0 {
		return nil
	}

	rows := make([]*customfield.FieldValue, 0, len(clean))
	names := make([]string, 0, len(clean))
	for _, def := range defs {
		typed, present := clean[def.Name]
		if !present {
			continue
		}
		raw, err := customfield.EncodeValue(def.FieldType, typed)
		if err != nil {
			return err
		}
		rows = append(rows, customfield.NewFieldValue(def.ID, entityID, raw))
		names = append(names, def.Name)
	}

	if err := s.valueRepo.UpsertAll(ctx, rows); err != nil {
		return err
	}

	s.logger.Debug("Custom field values saved",
		zap.String("entity_type", string(entityType)),
		zap.String("entity_id", entityID.String()),
		zap.Strings("fields", names))
	return nil
}

// GetValues returns the stored values of one host entity as a flat
// fieldName to typed-value map. Values of inactive definitions are hidden.
func (s *ValueService) GetValues(ctx context.Context, entityType customfield.EntityType, entityID uuid.UUID) (map[string]interface{}, error) {
	defs, err := s.activeDefinitions(ctx, entityType)
	if err != nil {
		return nil, err
	}
	values, err := s.valueRepo.FindByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return decodeRows(defs, values), nil
}

// BatchGetValues resolves values for many host entities in one shot. The
// result carries an entry for every requested ID, empty map included, so
// callers need no presence checks.
func (s *ValueService) BatchGetValues(ctx context.Context, entityType customfield.EntityType, entityIDs []uuid.UUID) (map[uuid.UUID]map[string]interface{}, error) {
	result := make(map[uuid.UUID]map[string]interface{}, len(entityIDs))
	for _, id := range entityIDs {
		result[id] = make(map[string]interface{})
	}
	if len(entityIDs) == 0 {
		return result, nil
	}

	defs, err := s.activeDefinitions(ctx, entityType)
	if err != nil {
		return nil, err
	}
	defByID := definitionIndex(defs)

	values, err := s.valueRepo.FindByEntities(ctx, entityIDs)
	if err != nil {
		return nil, err
	}

	for _, v := range values {
		def, ok := defByID[v.DefinitionID]
		if !ok {
			continue
		}
		entity, requested := result[v.EntityID]
		if !requested {
			continue
		}
		typed, err := customfield.DecodeValue(def.FieldType, v.RawValue)
		if err != nil {
			s.logger.Warn("Skipping undecodable custom field value",
				zap.String("definition_id", v.DefinitionID.String()),
				zap.String("entity_id", v.EntityID.String()),
				zap.Error(err))
			continue
		}
		entity[def.Name] = PresentValue(def.FieldType, typed)
	}
	return result, nil
}

// DeleteValues removes every value row of one host entity. Host modules
// call this when the entity itself is deleted.
func (s *ValueService) DeleteValues(ctx context.Context, entityID uuid.UUID) error {
	return s.valueRepo.DeleteByEntity(ctx, entityID)
}

func (s *ValueService) activeDefinitions(ctx context.Context, entityType customfield.EntityType) ([]*customfield.FieldDefinition, error) {
	if !entityType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", "Unknown entity type: "+string(entityType))
	}
	if s.cache != nil {
		if defs, ok := s.cache.Get(entityType); ok {
			return defs, nil
		}
	}
	defs, err := s.defRepo.FindByEntityType(ctx, entityType, false)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(entityType, defs)
	}
	return defs, nil
}

func definitionIndex(defs []*customfield.FieldDefinition) map[uuid.UUID]*customfield.FieldDefinition {
	index := make(map[uuid.UUID]*customfield.FieldDefinition, len(defs))
	for _, def := range defs {
		index[def.ID] = def
	}
	return index
}

func decodeRows(defs []*customfield.FieldDefinition, values []*customfield.FieldValue) map[string]interface{} {
	defByID := definitionIndex(defs)
	out := make(map[string]interface{}, len(values))
	for _, v := range values {
		def, ok := defByID[v.DefinitionID]
		if !ok {
			continue
		}
		typed, err := customfield.DecodeValue(def.FieldType, v.RawValue)
		if err != nil {
			continue
		}
		out[def.Name] = PresentValue(def.FieldType, typed)
	}
	return out
}
