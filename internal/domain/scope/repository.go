package scope

import (
	"context"

	"github.com/google/uuid"

	"github.com/mssp/backend/internal/domain/shared"
)

// ScopeRepository defines the persistence interface for service scopes
type ScopeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceScope, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ServiceScope, error)
	FindByContract(ctx context.Context, contractID uuid.UUID) ([]ServiceScope, error)
	FindByService(ctx context.Context, serviceID uuid.UUID, filter shared.Filter) ([]ServiceScope, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, s *ServiceScope) error
	Delete(ctx context.Context, id uuid.UUID) error
}
