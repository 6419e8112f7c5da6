package hardware

import (
	"context"

	"github.com/google/uuid"

	"github.com/mssp/backend/internal/domain/shared"
)

// AssetRepository defines the persistence interface for hardware assets
type AssetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*HardwareAsset, error)
	FindByAssetTag(ctx context.Context, assetTag string) (*HardwareAsset, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]HardwareAsset, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByAssetTag(ctx context.Context, assetTag string) (bool, error)
	Save(ctx context.Context, a *HardwareAsset) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AssignmentRepository defines the persistence interface for client
// hardware assignments
type AssignmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ClientHardwareAssignment, error)
	FindByClient(ctx context.Context, clientID uuid.UUID, activeOnly bool) ([]ClientHardwareAssignment, error)
	FindByAsset(ctx context.Context, assetID uuid.UUID) ([]ClientHardwareAssignment, error)
	FindActiveByAsset(ctx context.Context, assetID uuid.UUID) (*ClientHardwareAssignment, error)
	// SaveWithAsset persists the assignment and the asset's status flip in
	// one transaction
	SaveWithAsset(ctx context.Context, assignment *ClientHardwareAssignment, asset *HardwareAsset) error
	Save(ctx context.Context, assignment *ClientHardwareAssignment) error
}
