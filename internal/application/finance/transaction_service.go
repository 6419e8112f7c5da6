package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appcustomfield "github.com/mssp/backend/internal/application/customfield"
	"github.com/mssp/backend/internal/domain/client"
	"github.com/mssp/backend/internal/domain/customfield"
	"github.com/mssp/backend/internal/domain/finance"
	"github.com/mssp/backend/internal/domain/shared"
)

// TransactionService records and settles financial transactions
type TransactionService struct {
	txRepo     finance.TransactionRepository
	clientRepo client.ClientRepository
	values     *appcustomfield.ValueService
	logger     *zap.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	txRepo finance.TransactionRepository,
	clientRepo client.ClientRepository,
	values *appcustomfield.ValueService,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		txRepo:     txRepo,
		clientRepo: clientRepo,
		values:     values,
		logger:     logger,
	}
}

// Create records a pending transaction against an existing client
func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (*TransactionResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	if len(req.CustomFields) > 0 {
		if _, err := s.values.Validate(ctx, customfield.EntityTypeFinancialTransaction, req.CustomFields); err != nil {
			return nil, err
		}
	}

	t, err := finance.NewFinancialTransaction(
		finance.TransactionType(req.Type),
		finance.TransactionCategory(req.Category),
		req.Amount,
		req.Currency,
		req.TransactionDate,
		req.ClientID,
	)
	if err != nil {
		return nil, err
	}
	if req.ContractID != nil {
		if err := t.LinkContract(*req.ContractID); err != nil {
			return nil, err
		}
	}
	t.SetDescription(req.Description)

	if err := s.txRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	customFields := map[string]interface{}{}
	if len(req.CustomFields) > 0 {
		if err := s.values.SaveValues(ctx, customfield.EntityTypeFinancialTransaction, t.ID, req.CustomFields); err != nil {
			return nil, err
		}
		customFields, err = s.values.GetValues(ctx, customfield.EntityTypeFinancialTransaction, t.ID)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("Transaction recorded",
		zap.String("transaction_id", t.ID.String()),
		zap.String("type", string(t.Type)),
		zap.String("amount", t.Amount.String()),
		zap.String("client_id", t.ClientID.String()))

	resp := ToTransactionResponse(t, customFields)
	return &resp, nil
}

// GetByID retrieves a transaction with its custom field values
func (s *TransactionService) GetByID(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	t, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customFields, err := s.values.GetValues(ctx, customfield.EntityTypeFinancialTransaction, t.ID)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(t, customFields)
	return &resp, nil
}

// List retrieves transactions with pagination
func (s *TransactionService) List(ctx context.Context, filter TransactionListFilter) (*shared.Paginated[TransactionResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.ClientID != "" {
		f.Filters["client_id"] = filter.ClientID
	}
	if filter.Type != "" {
		f.Filters["type"] = filter.Type
	}
	if filter.Category != "" {
		f.Filters["category"] = filter.Category
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}

	transactions, err := s.txRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.txRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(transactions))
	for i := range transactions {
		ids = append(ids, transactions[i].ID)
	}
	valuesByID, err := s.values.BatchGetValues(ctx, customfield.EntityTypeFinancialTransaction, ids)
	if err != nil {
		return nil, err
	}

	items := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		items = append(items, ToTransactionResponse(&transactions[i], valuesByID[transactions[i].ID]))
	}

	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// Update patches a pending transaction
func (s *TransactionService) Update(ctx context.Context, id uuid.UUID, req UpdateTransactionRequest) (*TransactionResponse, error) {
	t, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if err := t.UpdateAmount(*req.Amount); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		t.SetDescription(*req.Description)
	}
	if len(req.CustomFields) > 0 {
		if err := s.values.SaveValues(ctx, customfield.EntityTypeFinancialTransaction, t.ID, req.CustomFields); err != nil {
			return nil, err
		}
	}

	if err := s.txRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	customFields, err := s.values.GetValues(ctx, customfield.EntityTypeFinancialTransaction, t.ID)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(t, customFields)
	return &resp, nil
}

// Complete marks a pending transaction settled
func (s *TransactionService) Complete(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*finance.FinancialTransaction).Complete)
}

// Cancel voids a pending transaction
func (s *TransactionService) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*finance.FinancialTransaction).Cancel)
}

func (s *TransactionService) transition(ctx context.Context, id uuid.UUID, fn func(*finance.FinancialTransaction) error) error {
	t, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(t); err != nil {
		return err
	}
	if err := s.txRepo.Save(ctx, t); err != nil {
		return err
	}
	s.logger.Info("Transaction status changed",
		zap.String("transaction_id", id.String()),
		zap.String("status", string(t.Status)))
	return nil
}

// Summarize totals completed revenue and cost, optionally bounded to one
// client and a date window
func (s *TransactionService) Summarize(ctx context.Context, filter SummaryFilter) (*SummaryResponse, error) {
	var from, to time.Time
	if filter.From != nil {
		from = *filter.From
	}
	if filter.To != nil {
		to = *filter.To
	}

	summary, err := s.txRepo.Summarize(ctx, filter.ClientID, from, to)
	if err != nil {
		return nil, err
	}

	return &SummaryResponse{
		Revenue:     summary.Revenue,
		Cost:        summary.Cost,
		GrossMargin: summary.GrossMargin(),
	}, nil
}

// Delete removes a cancelled transaction and its custom field values
func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if t.Status != finance.StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Only cancelled transactions can be deleted")
	}
	if err := s.values.DeleteValues(ctx, id); err != nil {
		return err
	}
	if err := s.txRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Warn("Transaction deleted", zap.String("transaction_id", id.String()))
	return nil
}
