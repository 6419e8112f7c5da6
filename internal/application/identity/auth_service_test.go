package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mssp/backend/internal/domain/identity"
	"github.com/mssp/backend/internal/domain/shared"
	"github.com/mssp/backend/internal/infrastructure/auth"
	"github.com/mssp/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-at-least-32-char",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "mssp-backend",
		MaxRefreshCount:        10,
	})
}

func newAuthTestService(users *MockUserRepository, blacklist auth.TokenBlacklist) *AuthService {
	return NewAuthService(users, newTestJWTService(), blacklist, zap.NewNop())
}

func activeUser(t *testing.T, password string) *identity.User {
	t.Helper()
	u, err := identity.NewUser("analyst", "analyst@mssp.example", password, identity.RoleEngineer)
	require.NoError(t, err)
	return u
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token pair", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthTestService(users, auth.NewInMemoryTokenBlacklist())

		u := activeUser(t, "Sup3rSecret1")
		users.On("FindByUsername", ctx, "analyst").Return(u, nil)
		users.On("Save", ctx, u).Return(nil)

		result, err := svc.Login(ctx, LoginRequest{Username: "analyst", Password: "Sup3rSecret1"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "analyst", result.User.Username)
		assert.NotNil(t, u.LastLoginAt, "login time must be recorded")
		users.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthTestService(users, auth.NewInMemoryTokenBlacklist())

		u := activeUser(t, "Sup3rSecret1")
		users.On("FindByUsername", ctx, "analyst").Return(u, nil)

		_, err := svc.Login(ctx, LoginRequest{Username: "analyst", Password: "wrong-pass1"})

		assert.Error(t, err)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthTestService(users, auth.NewInMemoryTokenBlacklist())

		users.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginRequest{Username: "ghost", Password: "whatever1"})
		assert.Error(t, err)
	})

	t.Run("deactivated account is refused", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthTestService(users, auth.NewInMemoryTokenBlacklist())

		u := activeUser(t, "Sup3rSecret1")
		require.NoError(t, u.Deactivate())
		users.On("FindByUsername", ctx, "analyst").Return(u, nil)

		_, err := svc.Login(ctx, LoginRequest{Username: "analyst", Password: "Sup3rSecret1"})
		assert.Error(t, err)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, users *MockUserRepository, svc *AuthService, u *identity.User) *LoginResult {
		t.Helper()
		users.On("FindByUsername", ctx, u.Username).Return(u, nil)
		users.On("Save", ctx, u).Return(nil)
		result, err := svc.Login(ctx, LoginRequest{Username: u.Username, Password: "Sup3rSecret1"})
		require.NoError(t, err)
		return result
	}

	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthTestService(users, auth.NewInMemoryTokenBlacklist())

		u := activeUser(t, "Sup3rSecret1")
		result := login(t, users, svc, u)
		users.On("FindByID", ctx, u.ID).Return(u, nil)

		refreshed, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: result.RefreshToken})

		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEmpty(t, refreshed.RefreshToken)
		assert.NotEqual(t, result.RefreshToken, refreshed.RefreshToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthTestService(users, auth.NewInMemoryTokenBlacklist())

		_, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: "not-a-jwt"})
		assert.Error(t, err)
	})

	t.Run("terminated session cannot refresh", func(t *testing.T) {
		users := new(MockUserRepository)
		blacklist := auth.NewInMemoryTokenBlacklist()
		svc := newAuthTestService(users, blacklist)

		u := activeUser(t, "Sup3rSecret1")
		result := login(t, users, svc, u)

		require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, u.ID.String(), time.Hour))

		_, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: result.RefreshToken})
		assert.Error(t, err)
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("deactivated user cannot refresh", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthTestService(users, auth.NewInMemoryTokenBlacklist())

		u := activeUser(t, "Sup3rSecret1")
		result := login(t, users, svc, u)

		require.NoError(t, u.Deactivate())
		users.On("FindByID", ctx, u.ID).Return(u, nil)

		_, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: result.RefreshToken})
		assert.Error(t, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := newAuthTestService(users, blacklist)

	jti := uuid.New().String()
	err := svc.Logout(ctx, LogoutInput{
		UserID:      uuid.New(),
		TokenJTI:    jti,
		TokenExpiry: time.Now().Add(10 * time.Minute),
	})

	require.NoError(t, err)
	revoked, err := blacklist.IsBlacklisted(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked, "the access token JTI must be revoked")
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong current password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthTestService(users, auth.NewInMemoryTokenBlacklist())

		u := activeUser(t, "Sup3rSecret1")
		users.On("FindByID", ctx, u.ID).Return(u, nil)

		err := svc.ChangePassword(ctx, u.ID, ChangePasswordRequest{
			OldPassword: "not-the-one1",
			NewPassword: "NewSecret99",
		})

		assert.Error(t, err)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("successful change terminates other sessions", func(t *testing.T) {
		users := new(MockUserRepository)
		blacklist := auth.NewInMemoryTokenBlacklist()
		svc := newAuthTestService(users, blacklist)

		u := activeUser(t, "Sup3rSecret1")
		issuedAt := time.Now().Add(-time.Minute)
		users.On("FindByID", ctx, u.ID).Return(u, nil)
		users.On("Save", ctx, u).Return(nil)

		err := svc.ChangePassword(ctx, u.ID, ChangePasswordRequest{
			OldPassword: "Sup3rSecret1",
			NewPassword: "NewSecret99",
		})

		require.NoError(t, err)
		assert.True(t, u.VerifyPassword("NewSecret99"))
		assert.False(t, u.VerifyPassword("Sup3rSecret1"))

		invalidated, err := blacklist.IsUserTokenInvalidated(ctx, u.ID.String(), issuedAt)
		require.NoError(t, err)
		assert.True(t, invalidated, "tokens issued before the change must be invalid")
		users.AssertExpectations(t)
	})
}
