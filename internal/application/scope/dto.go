package scope

import (
	"time"

	"github.com/google/uuid"

	"github.com/mssp/backend/internal/domain/scope"
)

// CreateScopeRequest is the payload for creating a service scope
type CreateScopeRequest struct {
	ContractID uuid.UUID              `json:"contract_id" binding:"required"`
	ServiceID  uuid.UUID              `json:"service_id" binding:"required"`
	Details    map[string]interface{} `json:"details"`
	Notes      string                 `json:"notes"`
}

// UpdateScopeRequest is the payload for updating a scope; a non-nil
// Details map replaces the stored details wholesale
type UpdateScopeRequest struct {
	Details         map[string]interface{} `json:"details"`
	SAFStartDate    *time.Time             `json:"saf_start_date"`
	SAFEndDate      *time.Time             `json:"saf_end_date"`
	SOCHandoverDate *time.Time             `json:"soc_handover_date"`
	Notes           *string                `json:"notes"`
}

// ScopeListFilter carries list query parameters
type ScopeListFilter struct {
	ContractID string `form:"contract_id"`
	ServiceID  string `form:"service_id"`
	Status     string `form:"status"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// ScopeResponse is the response shape of a service scope
type ScopeResponse struct {
	ID              uuid.UUID              `json:"id"`
	ContractID      uuid.UUID              `json:"contract_id"`
	ServiceID       uuid.UUID              `json:"service_id"`
	Details         map[string]interface{} `json:"details"`
	SAFStartDate    *time.Time             `json:"saf_start_date,omitempty"`
	SAFEndDate      *time.Time             `json:"saf_end_date,omitempty"`
	SOCHandoverDate *time.Time             `json:"soc_handover_date,omitempty"`
	Status          string                 `json:"status"`
	Notes           string                 `json:"notes,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// ToScopeResponse maps a domain scope to its response shape
func ToScopeResponse(s *scope.ServiceScope) ScopeResponse {
	details := s.Details
	if details == nil {
		details = map[string]interface{}{}
	}
	return ScopeResponse{
		ID:              s.ID,
		ContractID:      s.ContractID,
		ServiceID:       s.ServiceID,
		Details:         details,
		SAFStartDate:    s.SAFStartDate,
		SAFEndDate:      s.SAFEndDate,
		SOCHandoverDate: s.SOCHandoverDate,
		Status:          string(s.Status),
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// ToScopeResponses maps a slice of domain scopes
func ToScopeResponses(scopes []scope.ServiceScope) []ScopeResponse {
	out := make([]ScopeResponse, 0, len(scopes))
	for i := range scopes {
		out = append(out, ToScopeResponse(&scopes[i]))
	}
	return out
}
