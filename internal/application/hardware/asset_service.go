package hardware

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appcustomfield "github.com/mssp/backend/internal/application/customfield"
	"github.com/mssp/backend/internal/domain/client"
	"github.com/mssp/backend/internal/domain/customfield"
	"github.com/mssp/backend/internal/domain/hardware"
	"github.com/mssp/backend/internal/domain/shared"
)

// AssetService manages the hardware inventory and its client assignments.
// Assigning and returning flip the asset status and write the assignment
// row in one transaction.
type AssetService struct {
	assetRepo      hardware.AssetRepository
	assignmentRepo hardware.AssignmentRepository
	clientRepo     client.ClientRepository
	values         *appcustomfield.ValueService
	logger         *zap.Logger
}

// NewAssetService creates a new asset service
func NewAssetService(
	assetRepo hardware.AssetRepository,
	assignmentRepo hardware.AssignmentRepository,
	clientRepo client.ClientRepository,
	values *appcustomfield.ValueService,
	logger *zap.Logger,
) *AssetService {
	return &AssetService{
		assetRepo:      assetRepo,
		assignmentRepo: assignmentRepo,
		clientRepo:     clientRepo,
		values:         values,
		logger:         logger,
	}
}

// Create registers an available asset
func (s *AssetService) Create(ctx context.Context, req CreateAssetRequest) (*AssetResponse, error) {
	exists, err := s.assetRepo.ExistsByAssetTag(ctx, req.AssetTag)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An asset with this tag already exists")
	}

	if len(req.CustomFields) > 0 {
		if _, err := s.values.Validate(ctx, customfield.EntityTypeHardwareAsset, req.CustomFields); err != nil {
			return nil, err
		}
	}

	a, err := hardware.NewHardwareAsset(req.AssetTag, hardware.AssetType(req.Type), req.Manufacturer, req.Model)
	if err != nil {
		return nil, err
	}
	if err := a.SetPurchaseInfo(req.PurchaseDate, req.PurchaseCost); err != nil {
		return nil, err
	}
	a.SetSerialNumber(req.SerialNumber)
	a.SetNotes(req.Notes)

	if err := s.assetRepo.Save(ctx, a); err != nil {
		return nil, err
	}

	customFields := map[string]interface{}{}
	if len(req.CustomFields) > 0 {
		if err := s.values.SaveValues(ctx, customfield.EntityTypeHardwareAsset, a.ID, req.CustomFields); err != nil {
			return nil, err
		}
		customFields, err = s.values.GetValues(ctx, customfield.EntityTypeHardwareAsset, a.ID)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("Hardware asset registered",
		zap.String("asset_id", a.ID.String()),
		zap.String("asset_tag", a.AssetTag))

	resp := ToAssetResponse(a, customFields)
	return &resp, nil
}

// GetByID retrieves an asset with its custom field values
func (s *AssetService) GetByID(ctx context.Context, id uuid.UUID) (*AssetResponse, error) {
	a, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customFields, err := s.values.GetValues(ctx, customfield.EntityTypeHardwareAsset, a.ID)
	if err != nil {
		return nil, err
	}
	resp := ToAssetResponse(a, customFields)
	return &resp, nil
}

// List retrieves assets with pagination
func (s *AssetService) List(ctx context.Context, filter AssetListFilter) (*shared.Paginated[AssetResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.Type != "" {
		f.Filters["type"] = filter.Type
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}

	assets, err := s.assetRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.assetRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(assets))
	for i := range assets {
		ids = append(ids, assets[i].ID)
	}
	valuesByID, err := s.values.BatchGetValues(ctx, customfield.EntityTypeHardwareAsset, ids)
	if err != nil {
		return nil, err
	}

	items := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		items = append(items, ToAssetResponse(&assets[i], valuesByID[assets[i].ID]))
	}

	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// Update patches asset details
func (s *AssetService) Update(ctx context.Context, id uuid.UUID, req UpdateAssetRequest) (*AssetResponse, error) {
	a, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PurchaseDate != nil || req.PurchaseCost != nil {
		date := a.PurchaseDate
		if req.PurchaseDate != nil {
			date = req.PurchaseDate
		}
		cost := a.PurchaseCost
		if req.PurchaseCost != nil {
			cost = *req.PurchaseCost
		}
		if err := a.SetPurchaseInfo(date, cost); err != nil {
			return nil, err
		}
	}
	if req.SerialNumber != nil {
		a.SetSerialNumber(*req.SerialNumber)
	}
	if req.Notes != nil {
		a.SetNotes(*req.Notes)
	}

	if len(req.CustomFields) > 0 {
		if err := s.values.SaveValues(ctx, customfield.EntityTypeHardwareAsset, a.ID, req.CustomFields); err != nil {
			return nil, err
		}
	}

	if err := s.assetRepo.Save(ctx, a); err != nil {
		return nil, err
	}

	customFields, err := s.values.GetValues(ctx, customfield.EntityTypeHardwareAsset, a.ID)
	if err != nil {
		return nil, err
	}
	resp := ToAssetResponse(a, customFields)
	return &resp, nil
}

// Assign places an available asset at a client site. The new assignment
// row and the asset's status flip are persisted in one transaction.
func (s *AssetService) Assign(ctx context.Context, assetID uuid.UUID, req AssignAssetRequest) (*AssignmentResponse, error) {
	a, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	if err := a.MarkAssigned(); err != nil {
		return nil, err
	}

	assignedAt := time.Now()
	if req.AssignedAt != nil {
		assignedAt = *req.AssignedAt
	}
	assignment, err := hardware.NewClientHardwareAssignment(assetID, req.ClientID, req.ServiceScopeID, req.Location, assignedAt)
	if err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.SaveWithAsset(ctx, assignment, a); err != nil {
		return nil, err
	}

	s.logger.Info("Asset assigned",
		zap.String("asset_id", assetID.String()),
		zap.String("client_id", req.ClientID.String()),
		zap.String("assignment_id", assignment.ID.String()))

	resp := ToAssignmentResponse(assignment)
	return &resp, nil
}

// Return closes an asset's open assignment and puts the asset back in the
// pool, both in one transaction
func (s *AssetService) Return(ctx context.Context, assetID uuid.UUID, returnedAt time.Time) (*AssignmentResponse, error) {
	a, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	assignment, err := s.assignmentRepo.FindActiveByAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if returnedAt.IsZero() {
		returnedAt = time.Now()
	}
	if err := assignment.Close(returnedAt); err != nil {
		return nil, err
	}
	if err := a.MarkReturned(); err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.SaveWithAsset(ctx, assignment, a); err != nil {
		return nil, err
	}

	s.logger.Info("Asset returned",
		zap.String("asset_id", assetID.String()),
		zap.String("assignment_id", assignment.ID.String()))

	resp := ToAssignmentResponse(assignment)
	return &resp, nil
}

// ListAssignmentsByClient retrieves a client's assignments
func (s *AssetService) ListAssignmentsByClient(ctx context.Context, clientID uuid.UUID, activeOnly bool) ([]AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.FindByClient(ctx, clientID, activeOnly)
	if err != nil {
		return nil, err
	}
	return ToAssignmentResponses(assignments), nil
}

// ListAssignmentsByAsset retrieves an asset's assignment history
func (s *AssetService) ListAssignmentsByAsset(ctx context.Context, assetID uuid.UUID) ([]AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.FindByAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return ToAssignmentResponses(assignments), nil
}

// StartMaintenance pulls an available asset out of the pool
func (s *AssetService) StartMaintenance(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*hardware.HardwareAsset).StartMaintenance)
}

// FinishMaintenance returns a serviced asset to the pool
func (s *AssetService) FinishMaintenance(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*hardware.HardwareAsset).FinishMaintenance)
}

// Retire permanently removes an asset from service
func (s *AssetService) Retire(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*hardware.HardwareAsset).Retire)
}

func (s *AssetService) transition(ctx context.Context, id uuid.UUID, fn func(*hardware.HardwareAsset) error) error {
	a, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(a); err != nil {
		return err
	}
	if err := s.assetRepo.Save(ctx, a); err != nil {
		return err
	}
	s.logger.Info("Asset status changed",
		zap.String("asset_id", id.String()),
		zap.String("status", string(a.Status)))
	return nil
}
