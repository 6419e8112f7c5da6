package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/shared"
)

// Summary totals completed revenue and cost over some slice of transactions
type Summary struct {
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
}

// GrossMargin is revenue minus cost
func (s Summary) GrossMargin() decimal.Decimal {
	return s.Revenue.Sub(s.Cost)
}

// TransactionRepository defines the persistence interface for financial
// transactions
type TransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FinancialTransaction, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]FinancialTransaction, error)
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]FinancialTransaction, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// Summarize totals completed transactions; a nil clientID totals the
	// whole book, a zero time bound is open-ended
	Summarize(ctx context.Context, clientID *uuid.UUID, from, to time.Time) (Summary, error)
	Save(ctx context.Context, t *FinancialTransaction) error
	Delete(ctx context.Context, id uuid.UUID) error
}
