package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appcustomfield "github.com/mssp/backend/internal/application/customfield"
	"github.com/mssp/backend/internal/domain/client"
	"github.com/mssp/backend/internal/domain/contract"
	"github.com/mssp/backend/internal/domain/customfield"
	"github.com/mssp/backend/internal/domain/shared"
)

// ContractService handles contract lifecycle operations
type ContractService struct {
	contractRepo contract.ContractRepository
	clientRepo   client.ClientRepository
	values       *appcustomfield.ValueService
	logger       *zap.Logger
}

// NewContractService creates a new contract service
func NewContractService(
	contractRepo contract.ContractRepository,
	clientRepo client.ClientRepository,
	values *appcustomfield.ValueService,
	logger *zap.Logger,
) *ContractService {
	return &ContractService{
		contractRepo: contractRepo,
		clientRepo:   clientRepo,
		values:       values,
		logger:       logger,
	}
}

// Create creates a draft contract for an existing client
func (s *ContractService) Create(ctx context.Context, req CreateContractRequest) (*ContractResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	exists, err := s.contractRepo.ExistsByContractNumber(ctx, req.ContractNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A contract with this number already exists")
	}

	if len(req.CustomFields) > 0 {
		if _, err := s.values.Validate(ctx, customfield.EntityTypeContract, req.CustomFields); err != nil {
			return nil, err
		}
	}

	c, err := contract.NewContract(req.ClientID, req.ContractNumber, req.Name, req.StartDate, req.EndDate, req.Value)
	if err != nil {
		return nil, err
	}
	if req.AutoRenew {
		if err := c.UpdateTerms(c.Name, c.StartDate, c.EndDate, c.Value, true); err != nil {
			return nil, err
		}
	}
	c.SetNotes(req.Notes)

	if err := s.contractRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	customFields := map[string]interface{}{}
	if len(req.CustomFields) > 0 {
		if err := s.values.SaveValues(ctx, customfield.EntityTypeContract, c.ID, req.CustomFields); err != nil {
			return nil, err
		}
		customFields, err = s.values.GetValues(ctx, customfield.EntityTypeContract, c.ID)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("Contract created",
		zap.String("contract_id", c.ID.String()),
		zap.String("contract_number", c.ContractNumber),
		zap.String("client_id", c.ClientID.String()))

	resp := ToContractResponse(c, customFields)
	return &resp, nil
}

// GetByID retrieves a contract with its custom field values
func (s *ContractService) GetByID(ctx context.Context, id uuid.UUID) (*ContractResponse, error) {
	c, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customFields, err := s.values.GetValues(ctx, customfield.EntityTypeContract, c.ID)
	if err != nil {
		return nil, err
	}
	resp := ToContractResponse(c, customFields)
	return &resp, nil
}

// List retrieves contracts with pagination
func (s *ContractService) List(ctx context.Context, filter ContractListFilter) (*shared.Paginated[ContractResponse], error) {
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
	if filter.ClientID != "" {
		f.Filters["client_id"] = filter.ClientID
	}

	contracts, err := s.contractRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.contractRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(contracts))
	for i := range contracts {
		ids = append(ids, contracts[i].ID)
	}
	valuesByID, err := s.values.BatchGetValues(ctx, customfield.EntityTypeContract, ids)
	if err != nil {
		return nil, err
	}

	items := make([]ContractResponse, 0, len(contracts))
	for i := range contracts {
		items = append(items, ToContractResponse(&contracts[i], valuesByID[contracts[i].ID]))
	}

	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// ListByClient retrieves all contracts of one client
func (s *ContractService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]ContractResponse, error) {
	contracts, err := s.contractRepo.FindByClient(ctx, clientID, shared.Filter{})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(contracts))
	for i := range contracts {
		ids = append(ids, contracts[i].ID)
	}
	valuesByID, err := s.values.BatchGetValues(ctx, customfield.EntityTypeContract, ids)
	if err != nil {
		return nil, err
	}

	items := make([]ContractResponse, 0, len(contracts))
	for i := range contracts {
		items = append(items, ToContractResponse(&contracts[i], valuesByID[contracts[i].ID]))
	}
	return items, nil
}

// Update edits a draft contract's terms
func (s *ContractService) Update(ctx context.Context, id uuid.UUID, req UpdateContractRequest) (*ContractResponse, error) {
	c, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.StartDate != nil || req.EndDate != nil || req.Value != nil || req.AutoRenew != nil {
		name := c.Name
		if req.Name != nil {
			name = *req.Name
		}
		startDate := c.StartDate
		if req.StartDate != nil {
			startDate = *req.StartDate
		}
		endDate := c.EndDate
		if req.EndDate != nil {
			endDate = *req.EndDate
		}
		value := c.Value
		if req.Value != nil {
			value = *req.Value
		}
		autoRenew := c.AutoRenew
		if req.AutoRenew != nil {
			autoRenew = *req.AutoRenew
		}
		if err := c.UpdateTerms(name, startDate, endDate, value, autoRenew); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		c.SetNotes(*req.Notes)
	}

	if len(req.CustomFields) > 0 {
		if err := s.values.SaveValues(ctx, customfield.EntityTypeContract, c.ID, req.CustomFields); err != nil {
			return nil, err
		}
	}

	if err := s.contractRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	customFields, err := s.values.GetValues(ctx, customfield.EntityTypeContract, c.ID)
	if err != nil {
		return nil, err
	}
	resp := ToContractResponse(c, customFields)
	return &resp, nil
}

// Activate puts a draft contract into force
func (s *ContractService) Activate(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*contract.Contract).Activate)
}

// Cancel abandons a draft contract
func (s *ContractService) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*contract.Contract).Cancel)
}

// Terminate ends an active contract early
func (s *ContractService) Terminate(ctx context.Context, id uuid.UUID, req TerminateContractRequest) error {
	return s.transition(ctx, id, func(c *contract.Contract) error {
		return c.Terminate(req.Date, req.Reason)
	})
}

// MarkExpired flags an active contract whose end date has passed
func (s *ContractService) MarkExpired(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, func(c *contract.Contract) error {
		return c.MarkExpired(time.Now())
	})
}

func (s *ContractService) transition(ctx context.Context, id uuid.UUID, fn func(*contract.Contract) error) error {
	c, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	if err := s.contractRepo.Save(ctx, c); err != nil {
		return err
	}
	s.logger.Info("Contract status changed",
		zap.String("contract_id", id.String()),
		zap.String("status", string(c.Status)))
	return nil
}

// ListExpiring returns active contracts ending within the given window
func (s *ContractService) ListExpiring(ctx context.Context, days int) ([]ContractResponse, error) {
	if days <= 0 {
		days = 30
	}
	contracts, err := s.contractRepo.FindExpiring(ctx, time.Now(), days)
	if err != nil {
		return nil, err
	}
	items := make([]ContractResponse, 0, len(contracts))
	for i := range contracts {
		items = append(items, ToContractResponse(&contracts[i], nil))
	}
	return items, nil
}

// TotalValueByClient sums the value of one client's contracts
func (s *ContractService) TotalValueByClient(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	return s.contractRepo.SumValueByClient(ctx, clientID)
}

// Delete removes a contract and its custom field values. Only drafts and
// cancelled contracts can be deleted.
func (s *ContractService) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c.Status != contract.StatusDraft && c.Status != contract.StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Only draft or cancelled contracts can be deleted")
	}
	if err := s.values.DeleteValues(ctx, id); err != nil {
		return err
	}
	if err := s.contractRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Warn("Contract deleted", zap.String("contract_id", id.String()))
	return nil
}
