package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mssp/backend/internal/domain/catalog"
	"github.com/mssp/backend/internal/domain/shared"
)

// ServiceService manages the service catalog
type ServiceService struct {
	serviceRepo catalog.ServiceRepository
	logger      *zap.Logger
}

// NewServiceService creates a new catalog service
func NewServiceService(serviceRepo catalog.ServiceRepository, logger *zap.Logger) *ServiceService {
	return &ServiceService{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// Create creates a catalog entry, optionally with a scope template
func (s *ServiceService) Create(ctx context.Context, req CreateServiceRequest) (*ServiceResponse, error) {
	exists, err := s.serviceRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A service with this name already exists")
	}

	svc, err := catalog.NewService(req.Name, catalog.ServiceCategory(req.Category), catalog.DeliveryModel(req.DeliveryModel), req.BasePrice)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := svc.Update(svc.Name, req.Description, svc.Category, svc.DeliveryModel, svc.BasePrice); err != nil {
			return nil, err
		}
	}
	if len(req.ScopeTemplate) > 0 {
		if err := svc.SetScopeTemplate(ToTemplate(req.ScopeTemplate)); err != nil {
			return nil, err
		}
	}

	if err := s.serviceRepo.Save(ctx, svc); err != nil {
		return nil, err
	}

	s.logger.Info("Catalog service created",
		zap.String("service_id", svc.ID.String()),
		zap.String("name", svc.Name),
		zap.String("category", string(svc.Category)))

	resp := ToServiceResponse(svc)
	return &resp, nil
}

// GetByID retrieves a catalog entry
func (s *ServiceService) GetByID(ctx context.Context, id uuid.UUID) (*ServiceResponse, error) {
	svc, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToServiceResponse(svc)
	return &resp, nil
}

// List retrieves catalog entries with pagination
func (s *ServiceService) List(ctx context.Context, filter ServiceListFilter) (*shared.Paginated[ServiceResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.Category != "" {
		f.Filters["category"] = filter.Category
	}
	if !filter.IncludeInactive {
		f.Filters["is_active"] = true
	}

	services, err := s.serviceRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.serviceRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToServiceResponses(services), total, f.Page, f.PageSize)
	return &page, nil
}

// ListByCategory retrieves catalog entries of one category
func (s *ServiceService) ListByCategory(ctx context.Context, category string, includeInactive bool) ([]ServiceResponse, error) {
	cat := catalog.ServiceCategory(category)
	if !cat.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown service category: "+category)
	}
	services, err := s.serviceRepo.FindByCategory(ctx, cat, includeInactive)
	if err != nil {
		return nil, err
	}
	return ToServiceResponses(services), nil
}

// Update patches a catalog entry
func (s *ServiceService) Update(ctx context.Context, id uuid.UUID, req UpdateServiceRequest) (*ServiceResponse, error) {
	svc, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := svc.Name
	if req.Name != nil {
		if *req.Name != svc.Name {
			exists, err := s.serviceRepo.ExistsByName(ctx, *req.Name)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "A service with this name already exists")
			}
		}
		name = *req.Name
	}
	description := svc.Description
	if req.Description != nil {
		description = *req.Description
	}
	category := svc.Category
	if req.Category != nil {
		category = catalog.ServiceCategory(*req.Category)
	}
	deliveryModel := svc.DeliveryModel
	if req.DeliveryModel != nil {
		deliveryModel = catalog.DeliveryModel(*req.DeliveryModel)
	}
	basePrice := svc.BasePrice
	if req.BasePrice != nil {
		basePrice = *req.BasePrice
	}

	if err := svc.Update(name, description, category, deliveryModel, basePrice); err != nil {
		return nil, err
	}
	if err := s.serviceRepo.Save(ctx, svc); err != nil {
		return nil, err
	}

	resp := ToServiceResponse(svc)
	return &resp, nil
}

// SetScopeTemplate replaces the scope template of a catalog entry
func (s *ServiceService) SetScopeTemplate(ctx context.Context, id uuid.UUID, req SetScopeTemplateRequest) (*ServiceResponse, error) {
	svc, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := svc.SetScopeTemplate(ToTemplate(req.Fields)); err != nil {
		return nil, err
	}
	if err := s.serviceRepo.Save(ctx, svc); err != nil {
		return nil, err
	}

	s.logger.Info("Scope template updated",
		zap.String("service_id", id.String()),
		zap.Int("field_count", len(req.Fields)))

	resp := ToServiceResponse(svc)
	return &resp, nil
}

// Activate makes a catalog entry sellable again
func (s *ServiceService) Activate(ctx context.Context, id uuid.UUID) error {
	svc, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := svc.Activate(); err != nil {
		return err
	}
	return s.serviceRepo.Save(ctx, svc)
}

// Deactivate withdraws a catalog entry
func (s *ServiceService) Deactivate(ctx context.Context, id uuid.UUID) error {
	svc, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := svc.Deactivate(); err != nil {
		return err
	}
	if err := s.serviceRepo.Save(ctx, svc); err != nil {
		return err
	}
	s.logger.Info("Catalog service deactivated", zap.String("service_id", id.String()))
	return nil
}
