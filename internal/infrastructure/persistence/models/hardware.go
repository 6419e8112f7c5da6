package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/hardware"
)

// HardwareAssetModel is the persistence model for the HardwareAsset
// aggregate root.
type HardwareAssetModel struct {
	AggregateModel
	AssetTag     string               `gorm:"type:varchar(100);not null;uniqueIndex"`
	Type         hardware.AssetType   `gorm:"type:varchar(30);not null;index"`
	Manufacturer string               `gorm:"type:varchar(100)"`
	Model        string               `gorm:"type:varchar(100)"`
	SerialNumber string               `gorm:"type:varchar(100);index"`
	PurchaseDate *time.Time           `gorm:"type:date"`
	PurchaseCost decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Status       hardware.AssetStatus `gorm:"type:varchar(20);not null;default:'available';index"`
	Notes        string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (HardwareAssetModel) TableName() string {
	return "hardware_assets"
}

// ToDomain converts the persistence model to a domain HardwareAsset entity.
func (m *HardwareAssetModel) ToDomain() *hardware.HardwareAsset {
	return &hardware.HardwareAsset{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		AssetTag:          m.AssetTag,
		Type:              m.Type,
		Manufacturer:      m.Manufacturer,
		Model:             m.Model,
		SerialNumber:      m.SerialNumber,
		PurchaseDate:      m.PurchaseDate,
		PurchaseCost:      m.PurchaseCost,
		Status:            m.Status,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain HardwareAsset entity.
func (m *HardwareAssetModel) FromDomain(a *hardware.HardwareAsset) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.AssetTag = a.AssetTag
	m.Type = a.Type
	m.Manufacturer = a.Manufacturer
	m.Model = a.Model
	m.SerialNumber = a.SerialNumber
	m.PurchaseDate = a.PurchaseDate
	m.PurchaseCost = a.PurchaseCost
	m.Status = a.Status
	m.Notes = a.Notes
}

// HardwareAssetModelFromDomain creates a new persistence model from a domain HardwareAsset entity.
func HardwareAssetModelFromDomain(a *hardware.HardwareAsset) *HardwareAssetModel {
	m := &HardwareAssetModel{}
	m.FromDomain(a)
	return m
}

// ClientHardwareAssignmentModel is the persistence model for the
// ClientHardwareAssignment entity.
type ClientHardwareAssignmentModel struct {
	BaseModel
	AssetID        uuid.UUID                 `gorm:"type:uuid;not null;index"`
	ClientID       uuid.UUID                 `gorm:"type:uuid;not null;index"`
	ServiceScopeID *uuid.UUID                `gorm:"type:uuid;index"`
	Location       string                    `gorm:"type:varchar(200)"`
	AssignedAt     time.Time                 `gorm:"type:timestamptz;not null"`
	ReturnedAt     *time.Time                `gorm:"type:timestamptz"`
	Status         hardware.AssignmentStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (ClientHardwareAssignmentModel) TableName() string {
	return "client_hardware_assignments"
}

// ToDomain converts the persistence model to a domain ClientHardwareAssignment entity.
func (m *ClientHardwareAssignmentModel) ToDomain() *hardware.ClientHardwareAssignment {
	return &hardware.ClientHardwareAssignment{
		BaseEntity:     m.BaseModel.ToDomain(),
		AssetID:        m.AssetID,
		ClientID:       m.ClientID,
		ServiceScopeID: m.ServiceScopeID,
		Location:       m.Location,
		AssignedAt:     m.AssignedAt,
		ReturnedAt:     m.ReturnedAt,
		Status:         m.Status,
	}
}

// FromDomain populates the persistence model from a domain ClientHardwareAssignment entity.
func (m *ClientHardwareAssignmentModel) FromDomain(a *hardware.ClientHardwareAssignment) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.AssetID = a.AssetID
	m.ClientID = a.ClientID
	m.ServiceScopeID = a.ServiceScopeID
	m.Location = a.Location
	m.AssignedAt = a.AssignedAt
	m.ReturnedAt = a.ReturnedAt
	m.Status = a.Status
}

// ClientHardwareAssignmentModelFromDomain creates a new persistence model from a domain ClientHardwareAssignment entity.
func ClientHardwareAssignmentModelFromDomain(a *hardware.ClientHardwareAssignment) *ClientHardwareAssignmentModel {
	m := &ClientHardwareAssignmentModel{}
	m.FromDomain(a)
	return m
}
