package client

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appcustomfield "github.com/mssp/backend/internal/application/customfield"
	"github.com/mssp/backend/internal/domain/client"
	"github.com/mssp/backend/internal/domain/customfield"
	"github.com/mssp/backend/internal/domain/shared"
)

// ClientService handles client lifecycle and profile operations. Custom
// field data rides along on create, update, and read through the value
// service.
type ClientService struct {
	clientRepo client.ClientRepository
	values     *appcustomfield.ValueService
	logger     *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(
	clientRepo client.ClientRepository,
	values *appcustomfield.ValueService,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		values:     values,
		logger:     logger,
	}
}

// Create creates a client in prospect status. Custom fields are validated
// before the client row is written so an invalid map blocks creation.
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	exists, err := s.clientRepo.ExistsByCompanyName(ctx, req.CompanyName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this company name already exists")
	}

	if len(req.CustomFields) > 0 {
		if _, err := s.values.Validate(ctx, customfield.EntityTypeClient, req.CustomFields); err != nil {
			return nil, err
		}
	}

	c, err := client.NewClient(req.CompanyName, client.ClientSource(req.Source))
	if err != nil {
		return nil, err
	}
	if err := c.Update(req.CompanyName, req.ShortName, req.Industry, req.CompanySize); err != nil {
		return nil, err
	}
	if err := c.SetContact(req.ContactName, req.Email, req.Phone); err != nil {
		return nil, err
	}
	c.SetAddress(req.Address)
	if err := c.SetWebsite(req.Website); err != nil {
		return nil, err
	}
	c.SetNotes(req.Notes)

	if err := s.clientRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	customFields := map[string]interface{}{}
	if len(req.CustomFields) > 0 {
		if err := s.values.SaveValues(ctx, customfield.EntityTypeClient, c.ID, req.CustomFields); err != nil {
			return nil, err
		}
		customFields, err = s.values.GetValues(ctx, customfield.EntityTypeClient, c.ID)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("Client created",
		zap.String("client_id", c.ID.String()),
		zap.String("company_name", c.CompanyName))

	resp := ToClientResponse(c, customFields)
	return &resp, nil
}

// GetByID retrieves a client with its custom field values
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	c, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	customFields, err := s.values.GetValues(ctx, customfield.EntityTypeClient, c.ID)
	if err != nil {
		return nil, err
	}

	resp := ToClientResponse(c, customFields)
	return &resp, nil
}

// List retrieves clients with pagination. Custom field values are resolved
// for the whole page in one batch.
func (s *ClientService) List(ctx context.Context, filter ClientListFilter) (*shared.Paginated[ClientResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.Source != "" {
		f.Filters["source"] = filter.Source
	}
	if filter.Industry != "" {
		f.Filters["industry"] = filter.Industry
	}

	clients, err := s.clientRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.clientRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(clients))
	for i := range clients {
		ids = append(ids, clients[i].ID)
	}
	valuesByID, err := s.values.BatchGetValues(ctx, customfield.EntityTypeClient, ids)
	if err != nil {
		return nil, err
	}

	items := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, ToClientResponse(&clients[i], valuesByID[clients[i].ID]))
	}

	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// Update patches a client's profile. A CustomFields map replaces the
// supplied keys; omitted keys keep their stored values.
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	c, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	companyName := c.CompanyName
	if req.CompanyName != nil {
		if *req.CompanyName != c.CompanyName {
			exists, err := s.clientRepo.ExistsByCompanyName(ctx, *req.CompanyName)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this company name already exists")
			}
		}
		companyName = *req.CompanyName
	}
	shortName := c.ShortName
	if req.ShortName != nil {
		shortName = *req.ShortName
	}
	industry := c.Industry
	if req.Industry != nil {
		industry = *req.Industry
	}
	companySize := c.CompanySize
	if req.CompanySize != nil {
		companySize = *req.CompanySize
	}
	if err := c.Update(companyName, shortName, industry, companySize); err != nil {
		return nil, err
	}

	contactName := c.ContactName
	if req.ContactName != nil {
		contactName = *req.ContactName
	}
	email := c.Email
	if req.Email != nil {
		email = *req.Email
	}
	phone := c.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	if err := c.SetContact(contactName, email, phone); err != nil {
		return nil, err
	}

	if req.Address != nil {
		c.SetAddress(*req.Address)
	}
	if req.Website != nil {
		if err := c.SetWebsite(*req.Website); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		c.SetNotes(*req.Notes)
	}

	if len(req.CustomFields) > 0 {
		if err := s.values.SaveValues(ctx, customfield.EntityTypeClient, c.ID, req.CustomFields); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	customFields, err := s.values.GetValues(ctx, customfield.EntityTypeClient, c.ID)
	if err != nil {
		return nil, err
	}

	resp := ToClientResponse(c, customFields)
	return &resp, nil
}

// Activate moves a client into active service
func (s *ClientService) Activate(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*client.Client).Activate)
}

// Deactivate suspends an active client
func (s *ClientService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*client.Client).Deactivate)
}

// Archive retires a client record
func (s *ClientService) Archive(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*client.Client).Archive)
}

func (s *ClientService) transition(ctx context.Context, id uuid.UUID, fn func(*client.Client) error) error {
	c, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	if err := s.clientRepo.Save(ctx, c); err != nil {
		return err
	}
	s.logger.Info("Client status changed",
		zap.String("client_id", id.String()),
		zap.String("status", string(c.Status)))
	return nil
}

// Delete removes a client and its custom field values
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.values.DeleteValues(ctx, id); err != nil {
		return err
	}
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Warn("Client deleted", zap.String("client_id", id.String()))
	return nil
}

// StatusCounts reports client counts per lifecycle state
func (s *ClientService) StatusCounts(ctx context.Context) (*ClientStatusCounts, error) {
	counts, err := s.clientRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := &ClientStatusCounts{
		Prospect: counts[client.StatusProspect],
		Active:   counts[client.StatusActive],
		Inactive: counts[client.StatusInactive],
		Archived: counts[client.StatusArchived],
	}
	out.Total = out.Prospect + out.Active + out.Inactive + out.Archived
	return out, nil
}
