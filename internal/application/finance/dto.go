package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/finance"
)

// CreateTransactionRequest is the payload for recording a transaction
type CreateTransactionRequest struct {
	Type            string                 `json:"type" binding:"required"`
	Category        string                 `json:"category" binding:"required"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	Currency        string                 `json:"currency" binding:"required,len=3"`
	TransactionDate time.Time              `json:"transaction_date" binding:"required"`
	ClientID        uuid.UUID              `json:"client_id" binding:"required"`
	ContractID      *uuid.UUID             `json:"contract_id"`
	Description     string                 `json:"description"`
	CustomFields    map[string]interface{} `json:"custom_fields"`
}

// UpdateTransactionRequest patches a pending transaction
type UpdateTransactionRequest struct {
	Amount       *decimal.Decimal       `json:"amount"`
	Description  *string                `json:"description"`
	CustomFields map[string]interface{} `json:"custom_fields"`
}

// TransactionListFilter carries list query parameters
type TransactionListFilter struct {
	ClientID string `form:"client_id"`
	Type     string `form:"type"`
	Category string `form:"category"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// SummaryFilter bounds a financial summary query
type SummaryFilter struct {
	ClientID *uuid.UUID `form:"client_id"`
	From     *time.Time `form:"from"`
	To       *time.Time `form:"to"`
}

// TransactionResponse is the response shape of a financial transaction
type TransactionResponse struct {
	ID              uuid.UUID              `json:"id"`
	Type            string                 `json:"type"`
	Category        string                 `json:"category"`
	Amount          decimal.Decimal        `json:"amount"`
	Currency        string                 `json:"currency"`
	TransactionDate time.Time              `json:"transaction_date"`
	ClientID        uuid.UUID              `json:"client_id"`
	ContractID      *uuid.UUID             `json:"contract_id,omitempty"`
	Description     string                 `json:"description,omitempty"`
	Status          string                 `json:"status"`
	CustomFields    map[string]interface{} `json:"custom_fields"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// SummaryResponse reports completed revenue, cost, and margin
type SummaryResponse struct {
	Revenue     decimal.Decimal `json:"revenue"`
	Cost        decimal.Decimal `json:"cost"`
	GrossMargin decimal.Decimal `json:"gross_margin"`
}

// ToTransactionResponse maps a domain transaction to its response shape
func ToTransactionResponse(t *finance.FinancialTransaction, customFields map[string]interface{}) TransactionResponse {
	if customFields == nil {
		customFields = map[string]interface{}{}
	}
	return TransactionResponse{
		ID:              t.ID,
		Type:            string(t.Type),
		Category:        string(t.Category),
		Amount:          t.Amount,
		Currency:        t.Currency,
		TransactionDate: t.TransactionDate,
		ClientID:        t.ClientID,
		ContractID:      t.ContractID,
		Description:     t.Description,
		Status:          string(t.Status),
		CustomFields:    customFields,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
