package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mssp/backend/internal/domain/shared"
)

// ContractRepository defines the persistence interface for contracts
type ContractRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)
	FindByContractNumber(ctx context.Context, contractNumber string) (*Contract, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Contract, error)
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Contract, error)
	// FindExpiring returns active contracts whose end date falls inside
	// the window, ordered by end date
	FindExpiring(ctx context.Context, now time.Time, days int) ([]Contract, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// SumValueByClient totals the value of the client's active contracts
	SumValueByClient(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error)
	ExistsByContractNumber(ctx context.Context, contractNumber string) (bool, error)
	Save(ctx context.Context, c *Contract) error
	Delete(ctx context.Context, id uuid.UUID) error
}
