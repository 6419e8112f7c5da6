package scope

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appcustomfield "github.com/mssp/backend/internal/application/customfield"
	"github.com/mssp/backend/internal/domain/catalog"
	"github.com/mssp/backend/internal/domain/contract"
	"github.com/mssp/backend/internal/domain/customfield"
	"github.com/mssp/backend/internal/domain/scope"
	"github.com/mssp/backend/internal/domain/shared"
)

// ScopeService manages service scopes. Scope details are validated against
// the owning catalog service's scope template before any write.
type ScopeService struct {
	scopeRepo    scope.ScopeRepository
	serviceRepo  catalog.ServiceRepository
	contractRepo contract.ContractRepository
	logger       *zap.Logger
}

// NewScopeService creates a new scope service
func NewScopeService(
	scopeRepo scope.ScopeRepository,
	serviceRepo catalog.ServiceRepository,
	contractRepo contract.ContractRepository,
	logger *zap.Logger,
) *ScopeService {
	return &ScopeService{
		scopeRepo:    scopeRepo,
		serviceRepo:  serviceRepo,
		contractRepo: contractRepo,
		logger:       logger,
	}
}

// Create creates a pending scope under a contract
func (s *ScopeService) Create(ctx context.Context, req CreateScopeRequest) (*ScopeResponse, error) {
	if _, err := s.contractRepo.FindByID(ctx, req.ContractID); err != nil {
		return nil, err
	}
	svc, err := s.serviceRepo.FindByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, shared.NewDomainError("SERVICE_INACTIVE", "Inactive services cannot be sold")
	}

	details, err := s.validateDetails(svc, req.Details)
	if err != nil {
		return nil, err
	}

	sc, err := scope.NewServiceScope(req.ContractID, req.ServiceID, details)
	if err != nil {
		return nil, err
	}
	sc.SetNotes(req.Notes)

	if err := s.scopeRepo.Save(ctx, sc); err != nil {
		return nil, err
	}

	s.logger.Info("Service scope created",
		zap.String("scope_id", sc.ID.String()),
		zap.String("contract_id", sc.ContractID.String()),
		zap.String("service_id", sc.ServiceID.String()))

	resp := ToScopeResponse(sc)
	return &resp, nil
}

// GetByID retrieves a scope
func (s *ScopeService) GetByID(ctx context.Context, id uuid.UUID) (*ScopeResponse, error) {
	sc, err := s.scopeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToScopeResponse(sc)
	return &resp, nil
}

// List retrieves scopes with pagination
func (s *ScopeService) List(ctx context.Context, filter ScopeListFilter) (*shared.Paginated[ScopeResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.ContractID != "" {
		f.Filters["contract_id"] = filter.ContractID
	}
	if filter.ServiceID != "" {
		f.Filters["service_id"] = filter.ServiceID
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}

	scopes, err := s.scopeRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.scopeRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToScopeResponses(scopes), total, f.Page, f.PageSize)
	return &page, nil
}

// ListByContract retrieves all scopes of one contract
func (s *ScopeService) ListByContract(ctx context.Context, contractID uuid.UUID) ([]ScopeResponse, error) {
	scopes, err := s.scopeRepo.FindByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return ToScopeResponses(scopes), nil
}

// Update patches a scope. A non-nil Details map is revalidated against the
// service's current template and replaces the stored details.
func (s *ScopeService) Update(ctx context.Context, id uuid.UUID, req UpdateScopeRequest) (*ScopeResponse, error) {
	sc, err := s.scopeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Details != nil {
		svc, err := s.serviceRepo.FindByID(ctx, sc.ServiceID)
		if err != nil {
			return nil, err
		}
		details, err := s.validateDetails(svc, req.Details)
		if err != nil {
			return nil, err
		}
		if err := sc.SetDetails(details); err != nil {
			return nil, err
		}
	}
	if req.SAFStartDate != nil || req.SAFEndDate != nil {
		start := sc.SAFStartDate
		if req.SAFStartDate != nil {
			start = req.SAFStartDate
		}
		end := sc.SAFEndDate
		if req.SAFEndDate != nil {
			end = req.SAFEndDate
		}
		if err := sc.SetSAFDates(start, end); err != nil {
			return nil, err
		}
	}
	if req.SOCHandoverDate != nil {
		sc.SetSOCHandoverDate(req.SOCHandoverDate)
	}
	if req.Notes != nil {
		sc.SetNotes(*req.Notes)
	}

	if err := s.scopeRepo.Save(ctx, sc); err != nil {
		return nil, err
	}

	resp := ToScopeResponse(sc)
	return &resp, nil
}

// Activate marks a scope as in delivery
func (s *ScopeService) Activate(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*scope.ServiceScope).Activate)
}

// Complete closes a delivered scope
func (s *ScopeService) Complete(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*scope.ServiceScope).Complete)
}

// Cancel abandons a pending or active scope
func (s *ScopeService) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*scope.ServiceScope).Cancel)
}

func (s *ScopeService) transition(ctx context.Context, id uuid.UUID, fn func(*scope.ServiceScope) error) error {
	sc, err := s.scopeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(sc); err != nil {
		return err
	}
	if err := s.scopeRepo.Save(ctx, sc); err != nil {
		return err
	}
	s.logger.Info("Scope status changed",
		zap.String("scope_id", id.String()),
		zap.String("status", string(sc.Status)))
	return nil
}

// Delete removes a scope
func (s *ScopeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.scopeRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.scopeRepo.Delete(ctx, id)
}

// validateDetails runs the raw detail map through the template's field
// definitions and returns a JSON-safe typed map
func (s *ScopeService) validateDetails(svc *catalog.Service, raw map[string]interface{}) (map[string]interface{}, error) {
	defs, err := svc.ScopeTemplate.ToDefinitions()
	if err != nil {
		return nil, err
	}
	clean, err := customfield.ValidateValues(defs, raw)
	if err != nil {
		return nil, err
	}

	out := make(map[string]interface{}, len(clean))
	for _, def := range defs {
		typed, ok := clean[def.Name]
		if !ok {
			continue
		}
		out[def.Name] = appcustomfield.PresentValue(def.FieldType, typed)
	}
	return out, nil
}
