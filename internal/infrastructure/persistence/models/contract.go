package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/contract"
)

// ContractModel is the persistence model for the Contract aggregate root.
type ContractModel struct {
	AggregateModel
	ClientID          uuid.UUID               `gorm:"type:uuid;not null;index"`
	ContractNumber    string                  `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name              string                  `gorm:"type:varchar(200);not null"`
	StartDate         time.Time               `gorm:"type:date;not null"`
	EndDate           time.Time               `gorm:"type:date;not null;index"`
	Value             decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	AutoRenew         bool                    `gorm:"not null;default:false"`
	Status            contract.ContractStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	TerminationDate   *time.Time              `gorm:"type:date"`
	TerminationReason string                  `gorm:"type:text"`
	Notes             string                  `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the persistence model to a domain Contract entity.
func (m *ContractModel) ToDomain() *contract.Contract {
	return &contract.Contract{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ClientID:          m.ClientID,
		ContractNumber:    m.ContractNumber,
		Name:              m.Name,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Value:             m.Value,
		AutoRenew:         m.AutoRenew,
		Status:            m.Status,
		TerminationDate:   m.TerminationDate,
		TerminationReason: m.TerminationReason,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Contract entity.
func (m *ContractModel) FromDomain(c *contract.Contract) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.ClientID = c.ClientID
	m.ContractNumber = c.ContractNumber
	m.Name = c.Name
	m.StartDate = c.StartDate
	m.EndDate = c.EndDate
	m.Value = c.Value
	m.AutoRenew = c.AutoRenew
	m.Status = c.Status
	m.TerminationDate = c.TerminationDate
	m.TerminationReason = c.TerminationReason
	m.Notes = c.Notes
}

// ContractModelFromDomain creates a new persistence model from a domain Contract entity.
func ContractModelFromDomain(c *contract.Contract) *ContractModel {
	m := &ContractModel{}
	m.FromDomain(c)
	return m
}
