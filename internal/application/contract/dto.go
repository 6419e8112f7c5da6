package contract

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/contract"
)

// CreateContractRequest is the payload for creating a contract
type CreateContractRequest struct {
	ClientID       uuid.UUID              `json:"client_id" binding:"required"`
	ContractNumber string                 `json:"contract_number" binding:"required,max=50"`
	Name           string                 `json:"name" binding:"required,max=200"`
	StartDate      time.Time              `json:"start_date" binding:"required"`
	EndDate        time.Time              `json:"end_date" binding:"required"`
	Value          decimal.Decimal        `json:"value"`
	AutoRenew      bool                   `json:"auto_renew"`
	Notes          string                 `json:"notes"`
	CustomFields   map[string]interface{} `json:"custom_fields"`
}

// UpdateContractRequest is the payload for editing a draft contract
type UpdateContractRequest struct {
	Name         *string                `json:"name" binding:"omitempty,max=200"`
	StartDate    *time.Time             `json:"start_date"`
	EndDate      *time.Time             `json:"end_date"`
	Value        *decimal.Decimal       `json:"value"`
	AutoRenew    *bool                  `json:"auto_renew"`
	Notes        *string                `json:"notes"`
	CustomFields map[string]interface{} `json:"custom_fields"`
}

// TerminateContractRequest is the payload for terminating a contract
type TerminateContractRequest struct {
	Date   time.Time `json:"date" binding:"required"`
	Reason string    `json:"reason" binding:"required"`
}

// ContractListFilter carries list query parameters
type ContractListFilter struct {
	ClientID string `form:"client_id"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ContractResponse is the response shape of a contract
type ContractResponse struct {
	ID                uuid.UUID              `json:"id"`
	ClientID          uuid.UUID              `json:"client_id"`
	ContractNumber    string                 `json:"contract_number"`
	Name              string                 `json:"name"`
	StartDate         time.Time              `json:"start_date"`
	EndDate           time.Time              `json:"end_date"`
	Value             decimal.Decimal        `json:"value"`
	AutoRenew         bool                   `json:"auto_renew"`
	Status            string                 `json:"status"`
	TerminationDate   *time.Time             `json:"termination_date,omitempty"`
	TerminationReason string                 `json:"termination_reason,omitempty"`
	Notes             string                 `json:"notes,omitempty"`
	CustomFields      map[string]interface{} `json:"custom_fields"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// ToContractResponse maps a domain contract to its response shape
func ToContractResponse(c *contract.Contract, customFields map[string]interface{}) ContractResponse {
	if customFields == nil {
		customFields = map[string]interface{}{}
	}
	return ContractResponse{
		ID:                c.ID,
		ClientID:          c.ClientID,
		ContractNumber:    c.ContractNumber,
		Name:              c.Name,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		Value:             c.Value,
		AutoRenew:         c.AutoRenew,
		Status:            string(c.Status),
		TerminationDate:   c.TerminationDate,
		TerminationReason: c.TerminationReason,
		Notes:             c.Notes,
		CustomFields:      customFields,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
