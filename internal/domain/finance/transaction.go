package finance

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/shared"
)

// TransactionType distinguishes money in from money out
type TransactionType string

const (
	TypeCost    TransactionType = "cost"
	TypeRevenue TransactionType = "revenue"
)

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	return t == TypeCost || t == TypeRevenue
}

// TransactionCategory classifies what the money was for
type TransactionCategory string

const (
	CategoryLicense     TransactionCategory = "license"
	CategoryHardware    TransactionCategory = "hardware"
	CategoryServiceFee  TransactionCategory = "service_fee"
	CategoryMaintenance TransactionCategory = "maintenance"
	CategoryPenalty     TransactionCategory = "penalty"
	CategoryOther       TransactionCategory = "other"
)

// IsValid checks if the category is valid
func (c TransactionCategory) IsValid() bool {
	switch c {
	case CategoryLicense, CategoryHardware, CategoryServiceFee,
		CategoryMaintenance, CategoryPenalty, CategoryOther:
		return true
	}
	return false
}

// TransactionStatus represents the settlement state
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusCancelled TransactionStatus = "cancelled"
)

// IsValid checks if the status is valid
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// FinancialTransaction records one cost or revenue item against a client,
// optionally tied to a contract
type FinancialTransaction struct {
	shared.BaseAggregateRoot
	Type            TransactionType
	Category        TransactionCategory
	Amount          decimal.Decimal
	Currency        string
	TransactionDate time.Time
	ClientID        uuid.UUID
	ContractID      *uuid.UUID
	Description     string
	Status          TransactionStatus
}

// NewFinancialTransaction creates a pending transaction
func NewFinancialTransaction(
	txType TransactionType,
	category TransactionCategory,
	amount decimal.Decimal,
	currency string,
	transactionDate time.Time,
	clientID uuid.UUID,
) (*FinancialTransaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown transaction type: "+string(txType))
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown transaction category: "+string(category))
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !currencyRegex.MatchString(currency) {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a three-letter ISO code")
	}
	if transactionDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Transaction date is required")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID is required")
	}

	return &FinancialTransaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              txType,
		Category:          category,
		Amount:            amount,
		Currency:          currency,
		TransactionDate:   transactionDate,
		ClientID:          clientID,
		Status:            StatusPending,
	}, nil
}

// LinkContract ties the transaction to a contract
func (t *FinancialTransaction) LinkContract(contractID uuid.UUID) error {
	if contractID == uuid.Nil {
		return shared.NewDomainError("INVALID_CONTRACT", "Contract ID is required")
	}
	t.ContractID = &contractID
	t.IncrementVersion()
	return nil
}

// SetDescription sets the free-form description
func (t *FinancialTransaction) SetDescription(description string) {
	t.Description = description
	t.IncrementVersion()
}

// UpdateAmount changes the amount while still pending
func (t *FinancialTransaction) UpdateAmount(amount decimal.Decimal) error {
	if t.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending transactions can be edited")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	t.Amount = amount
	t.IncrementVersion()
	return nil
}

// Complete marks the transaction settled
func (t *FinancialTransaction) Complete() error {
	if t.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending transactions can be completed")
	}
	t.Status = StatusCompleted
	t.IncrementVersion()
	return nil
}

// Cancel voids a pending transaction
func (t *FinancialTransaction) Cancel() error {
	if t.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending transactions can be cancelled")
	}
	t.Status = StatusCancelled
	t.IncrementVersion()
	return nil
}
