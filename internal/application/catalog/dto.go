package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/catalog"
	"github.com/mssp/backend/internal/domain/customfield"
)

// TemplateFieldPayload is the wire shape of one scope template field
type TemplateFieldPayload struct {
	Name     string           `json:"name" binding:"required"`
	Label    string           `json:"label"`
	Type     string           `json:"type" binding:"required"`
	Required bool             `json:"required"`
	Options  []string         `json:"options"`
	Min      *decimal.Decimal `json:"min"`
	Max      *decimal.Decimal `json:"max"`
}

// CreateServiceRequest is the payload for creating a catalog entry
type CreateServiceRequest struct {
	Name          string                 `json:"name" binding:"required,max=200"`
	Description   string                 `json:"description"`
	Category      string                 `json:"category" binding:"required"`
	DeliveryModel string                 `json:"delivery_model" binding:"required"`
	BasePrice     decimal.Decimal        `json:"base_price"`
	ScopeTemplate []TemplateFieldPayload `json:"scope_template"`
}

// UpdateServiceRequest is the payload for updating a catalog entry
type UpdateServiceRequest struct {
	Name          *string          `json:"name" binding:"omitempty,max=200"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category"`
	DeliveryModel *string          `json:"delivery_model"`
	BasePrice     *decimal.Decimal `json:"base_price"`
}

// SetScopeTemplateRequest replaces a service's scope template
type SetScopeTemplateRequest struct {
	Fields []TemplateFieldPayload `json:"fields" binding:"required"`
}

// ServiceListFilter carries list query parameters
type ServiceListFilter struct {
	Category        string `form:"category"`
	Search          string `form:"search"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page"`
	PageSize        int    `form:"page_size"`
}

// ServiceResponse is the response shape of a catalog entry
type ServiceResponse struct {
	ID            uuid.UUID              `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description,omitempty"`
	Category      string                 `json:"category"`
	DeliveryModel string                 `json:"delivery_model"`
	BasePrice     decimal.Decimal        `json:"base_price"`
	ScopeTemplate []TemplateFieldPayload `json:"scope_template"`
	IsActive      bool                   `json:"is_active"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// ToTemplate maps payload fields to the domain template
func ToTemplate(fields []TemplateFieldPayload) catalog.ScopeTemplate {
	out := make(catalog.ScopeTemplate, 0, len(fields))
	for _, f := range fields {
		out = append(out, catalog.TemplateField{
			Name:     f.Name,
			Label:    f.Label,
			Type:     customfield.FieldType(f.Type),
			Required: f.Required,
			Options:  f.Options,
			Min:      f.Min,
			Max:      f.Max,
		})
	}
	return out
}

// TemplatePayloadFromDomain maps a domain template to its wire shape
func TemplatePayloadFromDomain(t catalog.ScopeTemplate) []TemplateFieldPayload {
	out := make([]TemplateFieldPayload, 0, len(t))
	for _, f := range t {
		out = append(out, TemplateFieldPayload{
			Name:     f.Name,
			Label:    f.Label,
			Type:     string(f.Type),
			Required: f.Required,
			Options:  f.Options,
			Min:      f.Min,
			Max:      f.Max,
		})
	}
	return out
}

// ToServiceResponse maps a domain service to its response shape
func ToServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:            s.ID,
		Name:          s.Name,
		Description:   s.Description,
		Category:      string(s.Category),
		DeliveryModel: string(s.DeliveryModel),
		BasePrice:     s.BasePrice,
		ScopeTemplate: TemplatePayloadFromDomain(s.ScopeTemplate),
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToServiceResponses maps a slice of domain services
func ToServiceResponses(services []catalog.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, ToServiceResponse(&services[i]))
	}
	return out
}
