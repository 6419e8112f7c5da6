package customfield

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/customfield"
)

// =============================================================================
// Field definition DTOs
// =============================================================================

// ValidationRulesPayload carries the optional constraint set on requests
// and responses
type ValidationRulesPayload struct {
	Min              *decimal.Decimal `json:"min,omitempty"`
	Max              *decimal.Decimal `json:"max,omitempty"`
	MinLength        *int             `json:"min_length,omitempty"`
	MaxLength        *int             `json:"max_length,omitempty"`
	MaxDecimalPlaces *int             `json:"max_decimal_places,omitempty"`
	Pattern          string           `json:"pattern,omitempty"`
	MinDate          *time.Time       `json:"min_date,omitempty"`
	MaxDate          *time.Time       `json:"max_date,omitempty"`
}

// ToDomain converts the payload to domain validation rules
func (p ValidationRulesPayload) ToDomain() customfield.ValidationRules {
	return customfield.ValidationRules{
		Min:              p.Min,
		Max:              p.Max,
		MinLength:        p.MinLength,
		MaxLength:        p.MaxLength,
		MaxDecimalPlaces: p.MaxDecimalPlaces,
		Pattern:          p.Pattern,
		MinDate:          p.MinDate,
		MaxDate:          p.MaxDate,
	}
}

// RulesPayloadFromDomain converts domain rules for API responses
func RulesPayloadFromDomain(r customfield.ValidationRules) *ValidationRulesPayload {
	if r.IsZero() {
		return nil
	}
	return &ValidationRulesPayload{
		Min:              r.Min,
		Max:              r.Max,
		MinLength:        r.MinLength,
		MaxLength:        r.MaxLength,
		MaxDecimalPlaces: r.MaxDecimalPlaces,
		Pattern:          r.Pattern,
		MinDate:          r.MinDate,
		MaxDate:          r.MaxDate,
	}
}

// CreateDefinitionRequest represents a request to create a field definition
type CreateDefinitionRequest struct {
	EntityType    string                  `json:"entity_type" binding:"required"`
	Name          string                  `json:"name" binding:"required,min=1,max=63"`
	Label         string                  `json:"label" binding:"required,min=1,max=255"`
	Description   string                  `json:"description" binding:"max=1000"`
	FieldType     string                  `json:"field_type" binding:"required"`
	SelectOptions []string                `json:"select_options"`
	Rules         *ValidationRulesPayload `json:"validation_rules"`
	DefaultValue  interface{}             `json:"default_value"`
	IsRequired    bool                    `json:"is_required"`
	DisplayOrder  *int                    `json:"display_order"`
}

// UpdateDefinitionRequest represents a partial update of a definition.
// Name, entity type and field type are immutable and deliberately absent.
type UpdateDefinitionRequest struct {
	Label         *string                 `json:"label" binding:"omitempty,min=1,max=255"`
	Description   *string                 `json:"description" binding:"omitempty,max=1000"`
	SelectOptions *[]string               `json:"select_options"`
	Rules         *ValidationRulesPayload `json:"validation_rules"`
	DefaultValue  interface{}             `json:"default_value"`
	IsRequired    *bool                   `json:"is_required"`
	DisplayOrder  *int                    `json:"display_order"`
}

// ReorderItem assigns a display order to one definition
type ReorderItem struct {
	ID           uuid.UUID `json:"id" binding:"required"`
	DisplayOrder int       `json:"display_order" binding:"min=0"`
}

// ReorderDefinitionsRequest bulk-applies display orders for one entity type
type ReorderDefinitionsRequest struct {
	EntityType string        `json:"entity_type" binding:"required"`
	Items      []ReorderItem `json:"items" binding:"required,min=1,dive"`
}

// DefinitionListFilter represents list options for definitions
type DefinitionListFilter struct {
	EntityType      string `form:"entity_type"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page"`
	PageSize        int    `form:"page_size"`
}

// DefinitionResponse represents a field definition in API responses
type DefinitionResponse struct {
	ID            uuid.UUID               `json:"id"`
	EntityType    string                  `json:"entity_type"`
	Name          string                  `json:"name"`
	Label         string                  `json:"label"`
	Description   string                  `json:"description,omitempty"`
	FieldType     string                  `json:"field_type"`
	SelectOptions []string                `json:"select_options,omitempty"`
	Rules         *ValidationRulesPayload `json:"validation_rules,omitempty"`
	DefaultValue  interface{}             `json:"default_value,omitempty"`
	IsRequired    bool                    `json:"is_required"`
	DisplayOrder  int                     `json:"display_order"`
	IsActive      bool                    `json:"is_active"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
	Version       int                     `json:"version"`
}

// ToDefinitionResponse maps a domain definition to its API shape
func ToDefinitionResponse(def *customfield.FieldDefinition) DefinitionResponse {
	resp := DefinitionResponse{
		ID:            def.ID,
		EntityType:    string(def.EntityType),
		Name:          def.Name,
		Label:         def.Label,
		Description:   def.Description,
		FieldType:     string(def.FieldType),
		SelectOptions: def.SelectOptions,
		Rules:         RulesPayloadFromDomain(def.Rules),
		IsRequired:    def.IsRequired,
		DisplayOrder:  def.DisplayOrder,
		IsActive:      def.IsActive,
		CreatedAt:     def.CreatedAt,
		UpdatedAt:     def.UpdatedAt,
		Version:       def.Version,
	}
	if def.DefaultValue != "" {
		if decoded, err := customfield.DecodeValue(def.FieldType, def.DefaultValue); err == nil {
			resp.DefaultValue = PresentValue(def.FieldType, decoded)
		}
	}
	return resp
}

// ToDefinitionResponses maps a definition slice
func ToDefinitionResponses(defs []*customfield.FieldDefinition) []DefinitionResponse {
	out := make([]DefinitionResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, ToDefinitionResponse(def))
	}
	return out
}

// =============================================================================
// Field value DTOs
// =============================================================================

// SaveValuesRequest carries the raw custom-field map written by a host module
type SaveValuesRequest struct {
	Data map[string]interface{} `json:"data" binding:"required"`
}

// PresentValue converts a clean typed value into its JSON-facing form:
// decimals become floats, dates and datetimes become strings.
func PresentValue(fieldType customfield.FieldType, value interface{}) interface{} {
	switch v := value.(type) {
	case decimal.Decimal:
		return v.InexactFloat64()
	case time.Time:
		if fieldType == customfield.FieldTypeDate {
			return v.Format(customfield.DateLayout)
		}
		return v.Format(time.RFC3339)
	}
	return value
}
