package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/mssp/backend/internal/domain/shared"
)

// ServiceRepository defines the persistence interface for catalog services
type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Service, error)
	FindByName(ctx context.Context, name string) (*Service, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Service, error)
	FindByCategory(ctx context.Context, category ServiceCategory, includeInactive bool) ([]Service, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}
