package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appfield "github.com/mssp/backend/internal/application/customfield"
	"github.com/mssp/backend/internal/domain/customfield"
)

// CustomFieldHandler handles field definition and field value HTTP requests
type CustomFieldHandler struct {
	BaseHandler
	definitionService *appfield.DefinitionService
	valueService      *appfield.ValueService
}

// NewCustomFieldHandler creates a new custom field handler
func NewCustomFieldHandler(definitionService *appfield.DefinitionService, valueService *appfield.ValueService) *CustomFieldHandler {
	return &CustomFieldHandler{
		definitionService: definitionService,
		valueService:      valueService,
	}
}

// CreateDefinition registers a new field definition
func (h *CustomFieldHandler) CreateDefinition(c *gin.Context) {
	var req appfield.CreateDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.definitionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetDefinition returns one field definition by ID
func (h *CustomFieldHandler) GetDefinition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid definition ID")
		return
	}

	resp, err := h.definitionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListDefinitions returns a paginated list of definitions across entity types
func (h *CustomFieldHandler) ListDefinitions(c *gin.Context) {
	var filter appfield.DefinitionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	defs, total, err := h.definitionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, defs, total, filter.Page, filter.PageSize)
}

// ListDefinitionsByEntityType returns the definitions of one host record kind
// in display order
func (h *CustomFieldHandler) ListDefinitionsByEntityType(c *gin.Context) {
	entityType := c.Param("entityType")
	includeInactive := c.Query("include_inactive") == "true"

	defs, err := h.definitionService.ListByEntityType(c.Request.Context(), entityType, includeInactive)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, defs)
}

// UpdateDefinition patches a definition's mutable attributes
func (h *CustomFieldHandler) UpdateDefinition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid definition ID")
		return
	}

	var req appfield.UpdateDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.definitionService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeactivateDefinition soft-deletes a definition, preserving stored values
func (h *CustomFieldHandler) DeactivateDefinition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid definition ID")
		return
	}

	if err := h.definitionService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Definition deactivated"})
}

// ReactivateDefinition restores a soft-deleted definition
func (h *CustomFieldHandler) ReactivateDefinition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid definition ID")
		return
	}

	if err := h.definitionService.Reactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Definition reactivated"})
}

// DeleteDefinition permanently removes a definition and its values
func (h *CustomFieldHandler) DeleteDefinition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid definition ID")
		return
	}

	if err := h.definitionService.HardDelete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ReorderDefinitions bulk-applies display orders for one entity type
func (h *CustomFieldHandler) ReorderDefinitions(c *gin.Context) {
	var req appfield.ReorderDefinitionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.definitionService.Reorder(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Definitions reordered"})
}

// GetValues returns the custom field values stored for one record
func (h *CustomFieldHandler) GetValues(c *gin.Context) {
	entityType := customfield.EntityType(c.Param("entityType"))
	if !entityType.IsValid() {
		h.BadRequest(c, "Invalid entity type")
		return
	}

	entityID, err := uuid.Parse(c.Param("entityID"))
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}

	values, err := h.valueService.GetValues(c.Request.Context(), entityType, entityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, values)
}

// SaveValues validates and persists the custom field map for one record
func (h *CustomFieldHandler) SaveValues(c *gin.Context) {
	entityType := customfield.EntityType(c.Param("entityType"))
	if !entityType.IsValid() {
		h.BadRequest(c, "Invalid entity type")
		return
	}

	entityID, err := uuid.Parse(c.Param("entityID"))
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}

	var req appfield.SaveValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.valueService.SaveValues(c.Request.Context(), entityType, entityID, req.Data); err != nil {
		h.HandleError(c, err)
		return
	}

	values, err := h.valueService.GetValues(c.Request.Context(), entityType, entityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, values)
}

// ValidateValues dry-runs validation of a custom field map without persisting
func (h *CustomFieldHandler) ValidateValues(c *gin.Context) {
	entityType := customfield.EntityType(c.Param("entityType"))
	if !entityType.IsValid() {
		h.BadRequest(c, "Invalid entity type")
		return
	}

	var req appfield.SaveValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	cleaned, err := h.valueService.Validate(c.Request.Context(), entityType, req.Data)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"valid": true, "data": cleaned})
}
