package client

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcustomfield "github.com/mssp/backend/internal/application/customfield"
	"github.com/mssp/backend/internal/domain/client"
	"github.com/mssp/backend/internal/domain/customfield"
	"github.com/mssp/backend/internal/domain/shared"
)

// MockClientRepository is a mock implementation of client.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockClientRepository) FindByCompanyName(ctx context.Context, companyName string) (*client.Client, error) {
	args := m.Called(ctx, companyName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]client.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]client.Client), args.Error(1)
}

func (m *MockClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) CountByStatus(ctx context.Context) (map[client.ClientStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[client.ClientStatus]int64), args.Error(1)
}

func (m *MockClientRepository) ExistsByCompanyName(ctx context.Context, companyName string) (bool, error) {
	args := m.Called(ctx, companyName)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Stub custom field repositories so the service can be wired with a real
// ValueService. The definition stub serves a fixed set of definitions; the
// value stub records upserts and serves stored rows.

type stubDefinitionRepo struct {
	customfield.DefinitionRepository
	defs []*customfield.FieldDefinition
}

func (s *stubDefinitionRepo) FindByEntityType(ctx context.Context, entityType customfield.EntityType, includeInactive bool) ([]*customfield.FieldDefinition, error) {
	return s.defs, nil
}

type stubValueRepo struct {
	customfield.ValueRepository
	rows []*customfield.FieldValue
}

func (s *stubValueRepo) FindByEntity(ctx context.Context, entityID uuid.UUID) ([]*customfield.FieldValue, error) {
	out := make([]*customfield.FieldValue, 0, len(s.rows))
	for _, r := range s.rows {
		if r.EntityID == entityID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubValueRepo) FindByEntities(ctx context.Context, entityIDs []uuid.UUID) ([]*customfield.FieldValue, error) {
	return s.rows, nil
}

func (s *stubValueRepo) UpsertAll(ctx context.Context, values []*customfield.FieldValue) error {
	s.rows = append(s.rows, values...)
	return nil
}

func (s *stubValueRepo) DeleteByEntity(ctx context.Context, entityID uuid.UUID) error {
	kept := s.rows[:0]
	for _, r := range s.rows {
		if r.EntityID != entityID {
			kept = append(kept, r)
		}
	}
	s.rows = kept
	return nil
}

func newTestService(t *testing.T, repo *MockClientRepository, defs ...*customfield.FieldDefinition) *ClientService {
	t.Helper()
	values := appcustomfield.NewValueService(
		&stubDefinitionRepo{defs: defs},
		&stubValueRepo{},
		nil,
		zap.NewNop(),
	)
	return NewClientService(repo, values, zap.NewNop())
}

func textDefinition(t *testing.T, name string) *customfield.FieldDefinition {
	t.Helper()
	def, err := customfield.NewFieldDefinition(customfield.EntityTypeClient, name, name, customfield.FieldTypeText)
	require.NoError(t, err)
	return def
}

func TestClientService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates prospect", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := newTestService(t, repo)

		repo.On("ExistsByCompanyName", ctx, "Acme Corp").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*client.Client")).Return(nil)

		resp, err := svc.Create(ctx, CreateClientRequest{
			CompanyName: "Acme Corp",
			Source:      "referral",
			Email:       "ops@acme.example",
		})

		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", resp.CompanyName)
		assert.Equal(t, string(client.StatusProspect), resp.Status)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate company name", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := newTestService(t, repo)

		repo.On("ExistsByCompanyName", ctx, "Acme Corp").Return(true, nil)

		_, err := svc.Create(ctx, CreateClientRequest{CompanyName: "Acme Corp"})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid custom fields block creation", func(t *testing.T) {
		repo := new(MockClientRepository)
		def := textDefinition(t, "account_tier")
		svc := newTestService(t, repo, def)

		repo.On("ExistsByCompanyName", ctx, "Acme Corp").Return(false, nil)

		_, err := svc.Create(ctx, CreateClientRequest{
			CompanyName:  "Acme Corp",
			CustomFields: map[string]interface{}{"no_such_field": "x"},
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("custom fields persist alongside the client", func(t *testing.T) {
		repo := new(MockClientRepository)
		def := textDefinition(t, "account_tier")
		svc := newTestService(t, repo, def)

		repo.On("ExistsByCompanyName", ctx, "Acme Corp").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*client.Client")).Return(nil)

		resp, err := svc.Create(ctx, CreateClientRequest{
			CompanyName:  "Acme Corp",
			CustomFields: map[string]interface{}{"account_tier": "gold"},
		})

		require.NoError(t, err)
		assert.Equal(t, "gold", resp.CustomFields["account_tier"])
	})
}

func TestClientService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := newTestService(t, repo)

		c, err := client.NewClient("Acme Corp", client.SourceDirect)
		require.NoError(t, err)
		repo.On("FindByID", ctx, c.ID).Return(c, nil)

		resp, err := svc.GetByID(ctx, c.ID)

		require.NoError(t, err)
		assert.Equal(t, c.ID, resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := newTestService(t, repo)
		id := uuid.New()

		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.GetByID(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestClientService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("patches supplied fields only", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := newTestService(t, repo)

		c, err := client.NewClient("Acme Corp", client.SourceDirect)
		require.NoError(t, err)
		require.NoError(t, c.Update("Acme Corp", "Acme", "Finance", "50-200"))

		repo.On("FindByID", ctx, c.ID).Return(c, nil)
		repo.On("Save", ctx, c).Return(nil)

		industry := "Healthcare"
		resp, err := svc.Update(ctx, c.ID, UpdateClientRequest{Industry: &industry})

		require.NoError(t, err)
		assert.Equal(t, "Healthcare", resp.Industry)
		assert.Equal(t, "Acme", resp.ShortName)
	})

	t.Run("rename onto existing company is rejected", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := newTestService(t, repo)

		c, err := client.NewClient("Acme Corp", client.SourceDirect)
		require.NoError(t, err)

		taken := "Globex"
		repo.On("FindByID", ctx, c.ID).Return(c, nil)
		repo.On("ExistsByCompanyName", ctx, taken).Return(true, nil)

		_, err = svc.Update(ctx, c.ID, UpdateClientRequest{CompanyName: &taken})
		assert.Error(t, err)
	})
}

func TestClientService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := newTestService(t, repo)

	c1, err := client.NewClient("Acme Corp", client.SourceDirect)
	require.NoError(t, err)
	c2, err := client.NewClient("Globex", client.SourceReferral)
	require.NoError(t, err)

	repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.Filters["status"] == "prospect"
	})).Return([]client.Client{*c1, *c2}, nil)
	repo.On("Count", ctx, mock.Anything).Return(int64(2), nil)

	page, err := svc.List(ctx, ClientListFilter{Status: "prospect"})

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.Page)
}

func TestClientService_Transitions(t *testing.T) {
	ctx := context.Background()

	t.Run("activate persists the new status", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := newTestService(t, repo)

		c, err := client.NewClient("Acme Corp", client.SourceDirect)
		require.NoError(t, err)

		repo.On("FindByID", ctx, c.ID).Return(c, nil)
		repo.On("Save", ctx, c).Return(nil)

		require.NoError(t, svc.Activate(ctx, c.ID))
		assert.Equal(t, client.StatusActive, c.Status)
		repo.AssertExpectations(t)
	})

	t.Run("invalid transition does not save", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := newTestService(t, repo)

		c, err := client.NewClient("Acme Corp", client.SourceDirect)
		require.NoError(t, err)

		repo.On("FindByID", ctx, c.ID).Return(c, nil)

		assert.Error(t, svc.Deactivate(ctx, c.ID))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestClientService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := newTestService(t, repo)

	c, err := client.NewClient("Acme Corp", client.SourceDirect)
	require.NoError(t, err)

	repo.On("FindByID", ctx, c.ID).Return(c, nil)
	repo.On("Delete", ctx, c.ID).Return(nil)

	require.NoError(t, svc.Delete(ctx, c.ID))
	repo.AssertExpectations(t)
}

func TestClientService_StatusCounts(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := newTestService(t, repo)

	repo.On("CountByStatus", ctx).Return(map[client.ClientStatus]int64{
		client.StatusProspect: 3,
		client.StatusActive:   10,
		client.StatusArchived: 2,
	}, nil)

	counts, err := svc.StatusCounts(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Prospect)
	assert.Equal(t, int64(10), counts.Active)
	assert.Equal(t, int64(0), counts.Inactive)
	assert.Equal(t, int64(15), counts.Total)
}
