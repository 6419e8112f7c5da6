package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/mssp/backend/internal/domain/shared"
)

// ClientRepository defines the persistence interface for clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByCompanyName(ctx context.Context, companyName string) (*Client, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context) (map[ClientStatus]int64, error)
	ExistsByCompanyName(ctx context.Context, companyName string) (bool, error)
	Save(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}
