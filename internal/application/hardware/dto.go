package hardware

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/hardware"
)

// CreateAssetRequest is the payload for registering a hardware asset
type CreateAssetRequest struct {
	AssetTag     string                 `json:"asset_tag" binding:"required,max=50"`
	Type         string                 `json:"type" binding:"required"`
	Manufacturer string                 `json:"manufacturer" binding:"omitempty,max=100"`
	Model        string                 `json:"model" binding:"omitempty,max=100"`
	SerialNumber string                 `json:"serial_number" binding:"omitempty,max=100"`
	PurchaseDate *time.Time             `json:"purchase_date"`
	PurchaseCost decimal.Decimal        `json:"purchase_cost"`
	Notes        string                 `json:"notes"`
	CustomFields map[string]interface{} `json:"custom_fields"`
}

// UpdateAssetRequest is the payload for updating asset details
type UpdateAssetRequest struct {
	SerialNumber *string                `json:"serial_number" binding:"omitempty,max=100"`
	PurchaseDate *time.Time             `json:"purchase_date"`
	PurchaseCost *decimal.Decimal       `json:"purchase_cost"`
	Notes        *string                `json:"notes"`
	CustomFields map[string]interface{} `json:"custom_fields"`
}

// AssignAssetRequest opens an assignment of one asset to one client
type AssignAssetRequest struct {
	ClientID       uuid.UUID  `json:"client_id" binding:"required"`
	ServiceScopeID *uuid.UUID `json:"service_scope_id"`
	Location       string     `json:"location" binding:"omitempty,max=200"`
	AssignedAt     *time.Time `json:"assigned_at"`
}

// AssetListFilter carries list query parameters
type AssetListFilter struct {
	Type     string `form:"type"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// AssetResponse is the response shape of a hardware asset
type AssetResponse struct {
	ID           uuid.UUID              `json:"id"`
	AssetTag     string                 `json:"asset_tag"`
	Type         string                 `json:"type"`
	Manufacturer string                 `json:"manufacturer,omitempty"`
	Model        string                 `json:"model,omitempty"`
	SerialNumber string                 `json:"serial_number,omitempty"`
	PurchaseDate *time.Time             `json:"purchase_date,omitempty"`
	PurchaseCost decimal.Decimal        `json:"purchase_cost"`
	Status       string                 `json:"status"`
	Notes        string                 `json:"notes,omitempty"`
	CustomFields map[string]interface{} `json:"custom_fields"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// AssignmentResponse is the response shape of a client hardware assignment
type AssignmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	AssetID        uuid.UUID  `json:"asset_id"`
	ClientID       uuid.UUID  `json:"client_id"`
	ServiceScopeID *uuid.UUID `json:"service_scope_id,omitempty"`
	Location       string     `json:"location,omitempty"`
	AssignedAt     time.Time  `json:"assigned_at"`
	ReturnedAt     *time.Time `json:"returned_at,omitempty"`
	Status         string     `json:"status"`
}

// ToAssetResponse maps a domain asset to its response shape
func ToAssetResponse(a *hardware.HardwareAsset, customFields map[string]interface{}) AssetResponse {
	if customFields == nil {
		customFields = map[string]interface{}{}
	}
	return AssetResponse{
		ID:           a.ID,
		AssetTag:     a.AssetTag,
		Type:         string(a.Type),
		Manufacturer: a.Manufacturer,
		Model:        a.Model,
		SerialNumber: a.SerialNumber,
		PurchaseDate: a.PurchaseDate,
		PurchaseCost: a.PurchaseCost,
		Status:       string(a.Status),
		Notes:        a.Notes,
		CustomFields: customFields,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ToAssignmentResponse maps a domain assignment to its response shape
func ToAssignmentResponse(a *hardware.ClientHardwareAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:             a.ID,
		AssetID:        a.AssetID,
		ClientID:       a.ClientID,
		ServiceScopeID: a.ServiceScopeID,
		Location:       a.Location,
		AssignedAt:     a.AssignedAt,
		ReturnedAt:     a.ReturnedAt,
		Status:         string(a.Status),
	}
}

// ToAssignmentResponses maps a slice of domain assignments
func ToAssignmentResponses(assignments []hardware.ClientHardwareAssignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, ToAssignmentResponse(&assignments[i]))
	}
	return out
}
