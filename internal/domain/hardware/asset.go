package hardware

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/shared"
)

// AssetType categorizes hardware assets
type AssetType string

const (
	TypeFirewall      AssetType = "firewall"
	TypeServer        AssetType = "server"
	TypeAppliance     AssetType = "appliance"
	TypeNetworkDevice AssetType = "network_device"
	TypeWorkstation   AssetType = "workstation"
	TypeOther         AssetType = "other"
)

// IsValid checks if the asset type is valid
func (t AssetType) IsValid() bool {
	switch t {
	case TypeFirewall, TypeServer, TypeAppliance, TypeNetworkDevice, TypeWorkstation, TypeOther:
		return true
	}
	return false
}

// AssetStatus represents the lifecycle state of a hardware asset
type AssetStatus string

const (
	StatusAvailable   AssetStatus = "available"
	StatusAssigned    AssetStatus = "assigned"
	StatusMaintenance AssetStatus = "maintenance"
	StatusRetired     AssetStatus = "retired"
)

// IsValid checks if the status is valid
func (s AssetStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusAssigned, StatusMaintenance, StatusRetired:
		return true
	}
	return false
}

// HardwareAsset is one physical device the provider owns and places at
// client sites. Retirement is terminal; retired assets never re-enter the
// assignment pool.
type HardwareAsset struct {
	shared.BaseAggregateRoot
	AssetTag     string
	Type         AssetType
	Manufacturer string
	Model        string
	SerialNumber string
	PurchaseDate *time.Time
	PurchaseCost decimal.Decimal
	Status       AssetStatus
	Notes        string
}

// NewHardwareAsset creates an available asset
func NewHardwareAsset(assetTag string, assetType AssetType, manufacturer, model string) (*HardwareAsset, error) {
	if strings.TrimSpace(assetTag) == "" {
		return nil, shared.NewDomainError("INVALID_ASSET_TAG", "Asset tag is required")
	}
	if !assetType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ASSET_TYPE", "Unknown asset type: "+string(assetType))
	}

	return &HardwareAsset{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AssetTag:          assetTag,
		Type:              assetType,
		Manufacturer:      manufacturer,
		Model:             model,
		Status:            StatusAvailable,
	}, nil
}

// SetPurchaseInfo records acquisition details
func (a *HardwareAsset) SetPurchaseInfo(date *time.Time, cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Purchase cost cannot be negative")
	}
	a.PurchaseDate = date
	a.PurchaseCost = cost
	a.IncrementVersion()
	return nil
}

// SetSerialNumber records the manufacturer serial
func (a *HardwareAsset) SetSerialNumber(serial string) {
	a.SerialNumber = serial
	a.IncrementVersion()
}

// SetNotes sets free-form notes
func (a *HardwareAsset) SetNotes(notes string) {
	a.Notes = notes
	a.IncrementVersion()
}

// MarkAssigned flips the asset into assigned state when an assignment opens
func (a *HardwareAsset) MarkAssigned() error {
	if a.Status != StatusAvailable {
		return shared.NewDomainError("INVALID_STATE", "Only available assets can be assigned")
	}
	a.Status = StatusAssigned
	a.IncrementVersion()
	return nil
}

// MarkReturned restores the asset to the pool when an assignment closes
func (a *HardwareAsset) MarkReturned() error {
	if a.Status != StatusAssigned {
		return shared.NewDomainError("INVALID_STATE", "Only assigned assets can be returned")
	}
	a.Status = StatusAvailable
	a.IncrementVersion()
	return nil
}

// StartMaintenance pulls an available asset out of the pool for service
func (a *HardwareAsset) StartMaintenance() error {
	if a.Status != StatusAvailable {
		return shared.NewDomainError("INVALID_STATE", "Only available assets can enter maintenance")
	}
	a.Status = StatusMaintenance
	a.IncrementVersion()
	return nil
}

// FinishMaintenance returns a serviced asset to the pool
func (a *HardwareAsset) FinishMaintenance() error {
	if a.Status != StatusMaintenance {
		return shared.NewDomainError("INVALID_STATE", "Asset is not in maintenance")
	}
	a.Status = StatusAvailable
	a.IncrementVersion()
	return nil
}

// Retire permanently removes the asset from service
func (a *HardwareAsset) Retire() error {
	if a.Status == StatusRetired {
		return shared.NewDomainError("INVALID_STATE", "Asset is already retired")
	}
	if a.Status == StatusAssigned {
		return shared.NewDomainError("INVALID_STATE", "Assigned assets must be returned before retirement")
	}
	a.Status = StatusRetired
	a.IncrementVersion()
	return nil
}
