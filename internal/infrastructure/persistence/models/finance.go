package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/finance"
)

// FinancialTransactionModel is the persistence model for the
// FinancialTransaction aggregate root.
type FinancialTransactionModel struct {
	AggregateModel
	Type            finance.TransactionType     `gorm:"type:varchar(20);not null;index"`
	Category        finance.TransactionCategory `gorm:"type:varchar(30);not null;index"`
	Amount          decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	Currency        string                      `gorm:"type:varchar(3);not null"`
	TransactionDate time.Time                   `gorm:"type:date;not null;index"`
	ClientID        uuid.UUID                   `gorm:"type:uuid;not null;index"`
	ContractID      *uuid.UUID                  `gorm:"type:uuid;index"`
	Description     string                      `gorm:"type:text"`
	Status          finance.TransactionStatus   `gorm:"type:varchar(20);not null;default:'pending';index"`
}

// TableName returns the table name for GORM
func (FinancialTransactionModel) TableName() string {
	return "financial_transactions"
}

// ToDomain converts the persistence model to a domain FinancialTransaction entity.
func (m *FinancialTransactionModel) ToDomain() *finance.FinancialTransaction {
	return &finance.FinancialTransaction{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Type:              m.Type,
		Category:          m.Category,
		Amount:            m.Amount,
		Currency:          m.Currency,
		TransactionDate:   m.TransactionDate,
		ClientID:          m.ClientID,
		ContractID:        m.ContractID,
		Description:       m.Description,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain FinancialTransaction entity.
func (m *FinancialTransactionModel) FromDomain(t *finance.FinancialTransaction) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Type = t.Type
	m.Category = t.Category
	m.Amount = t.Amount
	m.Currency = t.Currency
	m.TransactionDate = t.TransactionDate
	m.ClientID = t.ClientID
	m.ContractID = t.ContractID
	m.Description = t.Description
	m.Status = t.Status
}

// FinancialTransactionModelFromDomain creates a new persistence model from a domain FinancialTransaction entity.
func FinancialTransactionModelFromDomain(t *finance.FinancialTransaction) *FinancialTransactionModel {
	m := &FinancialTransactionModel{}
	m.FromDomain(t)
	return m
}
