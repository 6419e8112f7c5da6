package customfield

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mssp/backend/internal/domain/customfield"
	"github.com/mssp/backend/internal/domain/shared"
)

// DefinitionCache caches the active definitions per entity type. Writes to
// definitions must invalidate the affected entity type.
type DefinitionCache interface {
	Get(entityType customfield.EntityType) ([]*customfield.FieldDefinition, bool)
	Set(entityType customfield.EntityType, defs []*customfield.FieldDefinition)
	Invalidate(entityType customfield.EntityType)
}

// DefinitionService manages admin-authored field definitions
type DefinitionService struct {
	defRepo customfield.DefinitionRepository
	cache   DefinitionCache
	logger  *zap.Logger
}

// NewDefinitionService creates a new DefinitionService. The cache may be nil.
func NewDefinitionService(defRepo customfield.DefinitionRepository, cache DefinitionCache, logger *zap.Logger) *DefinitionService {
	return &DefinitionService{
		defRepo: defRepo,
		cache:   cache,
		logger:  logger,
	}
}

// Create creates a field definition. The (entityType, name) pair must be
// unused across active and inactive definitions.
func (s *DefinitionService) Create(ctx context.Context, req CreateDefinitionRequest) (*DefinitionResponse, error) {
	entityType := customfield.EntityType(req.EntityType)

	existing, err := s.defRepo.FindByEntityTypeAndName(ctx, entityType, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A field with this name already exists for this entity type")
	}

	def, err := customfield.NewFieldDefinition(entityType, req.Name, req.Label, customfield.FieldType(req.FieldType))
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		def.UpdateDescription(req.Description)
	}
	if len(req.SelectOptions) > 0 || def.FieldType.RequiresOptions() {
		if err := def.SetSelectOptions(req.SelectOptions); err != nil {
			return nil, err
		}
	}
	if req.Rules != nil {
		if err := def.SetRules(req.Rules.ToDomain()); err != nil {
			return nil, err
		}
	}
	if req.DefaultValue != nil {
		if err := def.SetDefaultValue(req.DefaultValue); err != nil {
			return nil, err
		}
	}
	def.SetRequired(req.IsRequired)
	if req.DisplayOrder != nil {
		if err := def.SetDisplayOrder(*req.DisplayOrder); err != nil {
			return nil, err
		}
	}

	if err := s.defRepo.Save(ctx, def); err != nil {
		return nil, err
	}
	s.invalidate(entityType)

	s.logger.Info("Field definition created",
		zap.String("entity_type", string(def.EntityType)),
		zap.String("name", def.Name),
		zap.String("field_type", string(def.FieldType)))

	resp := ToDefinitionResponse(def)
	return &resp, nil
}

// GetByID retrieves a definition by ID, active or not
func (s *DefinitionService) GetByID(ctx context.Context, id uuid.UUID) (*DefinitionResponse, error) {
	def, err := s.defRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToDefinitionResponse(def)
	return &resp, nil
}

// ListByEntityType returns the definitions for one entity type ordered by
// display order. Inactive definitions are hidden unless requested.
func (s *DefinitionService) ListByEntityType(ctx context.Context, entityType string, includeInactive bool) ([]DefinitionResponse, error) {
	et := customfield.EntityType(entityType)
	if !et.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", "Unknown entity type: "+entityType)
	}
	defs, err := s.defRepo.FindByEntityType(ctx, et, includeInactive)
	if err != nil {
		return nil, err
	}
	return ToDefinitionResponses(defs), nil
}

// List returns a page of definitions across entity types
func (s *DefinitionService) List(ctx context.Context, filter DefinitionListFilter) ([]DefinitionResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := customfield.DefinitionFilter{
		IncludeInactive: filter.IncludeInactive,
		Page:            filter.Page,
		PageSize:        filter.PageSize,
	}
	if filter.EntityType != "" {
		et := customfield.EntityType(filter.EntityType)
		if !et.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_ENTITY_TYPE", "Unknown entity type: "+filter.EntityType)
		}
		domainFilter.EntityType = &et
	}

	defs, total, err := s.defRepo.List(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToDefinitionResponses(defs), total, nil
}

// Update applies a partial patch. Name, entity type and field type stay
// fixed for the definition's lifetime so historical values keep a stable
// interpretation.
func (s *DefinitionService) Update(ctx context.Context, id uuid.UUID, req UpdateDefinitionRequest) (*DefinitionResponse, error) {
	def, err := s.defRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Label != nil {
		if err := def.UpdateLabel(*req.Label); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		def.UpdateDescription(*req.Description)
	}
	if req.SelectOptions != nil {
		if err := def.SetSelectOptions(*req.SelectOptions); err != nil {
			return nil, err
		}
	}
	if req.Rules != nil {
		if err := def.SetRules(req.Rules.ToDomain()); err != nil {
			return nil, err
		}
	}
	if req.DefaultValue != nil {
		if err := def.SetDefaultValue(req.DefaultValue); err != nil {
			return nil, err
		}
	}
	if req.IsRequired != nil {
		def.SetRequired(*req.IsRequired)
	}
	if req.DisplayOrder != nil {
		if err := def.SetDisplayOrder(*req.DisplayOrder); err != nil {
			return nil, err
		}
	}

	if err := s.defRepo.Save(ctx, def); err != nil {
		return nil, err
	}
	s.invalidate(def.EntityType)

	resp := ToDefinitionResponse(def)
	return &resp, nil
}

// Deactivate soft-removes a definition; its values stay readable and its
// name stays reserved
func (s *DefinitionService) Deactivate(ctx context.Context, id uuid.UUID) error {
	def, err := s.defRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := def.Deactivate(); err != nil {
		return err
	}
	if err := s.defRepo.Save(ctx, def); err != nil {
		return err
	}
	s.invalidate(def.EntityType)

	s.logger.Info("Field definition deactivated",
		zap.String("entity_type", string(def.EntityType)),
		zap.String("name", def.Name))
	return nil
}

// Reactivate restores a soft-removed definition
func (s *DefinitionService) Reactivate(ctx context.Context, id uuid.UUID) error {
	def, err := s.defRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := def.Reactivate(); err != nil {
		return err
	}
	if err := s.defRepo.Save(ctx, def); err != nil {
		return err
	}
	s.invalidate(def.EntityType)
	return nil
}

// HardDelete physically removes the definition together with every value
// stored under it, in one transaction
func (s *DefinitionService) HardDelete(ctx context.Context, id uuid.UUID) error {
	def, err := s.defRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.defRepo.DeleteWithValues(ctx, id); err != nil {
		return err
	}
	s.invalidate(def.EntityType)

	s.logger.Warn("Field definition hard-deleted with its values",
		zap.String("entity_type", string(def.EntityType)),
		zap.String("name", def.Name))
	return nil
}

// Reorder bulk-applies new display orders for one entity type atomically
func (s *DefinitionService) Reorder(ctx context.Context, req ReorderDefinitionsRequest) error {
	entityType := customfield.EntityType(req.EntityType)
	if !entityType.IsValid() {
		return shared.NewDomainError("INVALID_ENTITY_TYPE", "Unknown entity type: "+req.EntityType)
	}

	orders := make(map[uuid.UUID]int, len(req.Items))
	for _, item := range req.Items {
		if item.DisplayOrder < 0 {
			return shared.NewDomainError("INVALID_DISPLAY_ORDER", "Display order cannot be negative")
		}
		if _, dup := orders[item.ID]; dup {
			return shared.NewDomainError("INVALID_INPUT", "Duplicate definition ID in reorder request")
		}
		orders[item.ID] = item.DisplayOrder
	}

	if err := s.defRepo.Reorder(ctx, entityType, orders); err != nil {
		return err
	}
	s.invalidate(entityType)
	return nil
}

func (s *DefinitionService) invalidate(entityType customfield.EntityType) {
	if s.cache != nil {
		s.cache.Invalidate(entityType)
	}
}
