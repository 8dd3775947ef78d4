package gymadmin

import (
	"context"
	"errors"
	"testing"

	"allyoucangym/internal/auth"
	"allyoucangym/internal/gym"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAdminRepo struct{ mock.Mock }

func (m *MockAdminRepo) Create(ctx context.Context, username, email, passwordHash string) (*GymAdmin, error) {
	args := m.Called(ctx, username, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GymAdmin), args.Error(1)
}

func (m *MockAdminRepo) FindByID(ctx context.Context, id string) (*GymAdmin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GymAdmin), args.Error(1)
}

func (m *MockAdminRepo) FindByIdentifier(ctx context.Context, identifier string) (*GymAdmin, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GymAdmin), args.Error(1)
}

func (m *MockAdminRepo) ListGyms(ctx context.Context, adminID string) ([]gym.Gym, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gym.Gym), args.Error(1)
}

func (m *MockAdminRepo) AddGym(ctx context.Context, adminID, gymID string) (*GymAdmin, error) {
	args := m.Called(ctx, adminID, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GymAdmin), args.Error(1)
}

func (m *MockAdminRepo) Exists(ctx context.Context, adminID string) (bool, error) {
	args := m.Called(ctx, adminID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminRepo) OwnsGym(ctx context.Context, adminID, gymID string) (bool, error) {
	args := m.Called(ctx, adminID, gymID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminRepo) OwnsSession(ctx context.Context, adminID, sessionID string) (bool, error) {
	args := m.Called(ctx, adminID, sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminRepo) OwnsAnnouncement(ctx context.Context, adminID, announcementID string) (bool, error) {
	args := m.Called(ctx, adminID, announcementID)
	return args.Bool(0), args.Error(1)
}

const testSecret = "test-secret"

func newTestService(repo Repository) Service {
	return NewService(repo, auth.NewTokenIssuer(testSecret, 0))
}

func TestRegisterHashesPasswordAndNormalizesEmail(t *testing.T) {
	repo := new(MockAdminRepo)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, "coach", "coach@gym.io", mock.MatchedBy(func(hash string) bool {
		return auth.CheckPassword(hash, "secret1")
	})).Return(&GymAdmin{ID: "a1", Username: "coach", Email: "coach@gym.io"}, nil)

	a, err := svc.Register(ctx, RegisterRequest{Username: " coach ", Email: "Coach@Gym.io", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
	repo.AssertExpectations(t)
}

func TestRegisterDuplicate(t *testing.T) {
	repo := new(MockAdminRepo)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, "coach", "coach@gym.io", mock.Anything).Return(nil, ErrAdminExists)

	_, err := svc.Register(ctx, RegisterRequest{Username: "coach", Email: "coach@gym.io", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAdminExists)
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	stored := &GymAdmin{ID: "a1", Username: "coach", Email: "coach@gym.io", PasswordHash: hash, Gyms: pq.StringArray{"g1"}}

	t.Run("by email issues gym admin token", func(t *testing.T) {
		repo := new(MockAdminRepo)
		svc := newTestService(repo)
		ctx := context.Background()
		repo.On("FindByIdentifier", ctx, "coach@gym.io").Return(stored, nil)

		res, err := svc.Login(ctx, LoginRequest{Email: "COACH@gym.io", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"g1"}, res.Gyms)

		claims, err := auth.ValidateToken(res.Token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, "a1", claims.PrincipalID)
		assert.Equal(t, auth.RoleGymAdmin, claims.Role)
	})

	t.Run("by username", func(t *testing.T) {
		repo := new(MockAdminRepo)
		svc := newTestService(repo)
		ctx := context.Background()
		repo.On("FindByIdentifier", ctx, "coach").Return(stored, nil)

		_, err := svc.Login(ctx, LoginRequest{Email: "coach", Password: "secret1"})
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockAdminRepo)
		svc := newTestService(repo)
		ctx := context.Background()
		repo.On("FindByIdentifier", ctx, "coach").Return(stored, nil)

		_, err := svc.Login(ctx, LoginRequest{Email: "coach", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown admin looks like bad credentials", func(t *testing.T) {
		repo := new(MockAdminRepo)
		svc := newTestService(repo)
		ctx := context.Background()
		repo.On("FindByIdentifier", ctx, "ghost").Return(nil, ErrAdminNotFound)

		_, err := svc.Login(ctx, LoginRequest{Email: "ghost", Password: "secret1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("storage failure surfaces", func(t *testing.T) {
		repo := new(MockAdminRepo)
		svc := newTestService(repo)
		ctx := context.Background()
		boom := errors.New("db down")
		repo.On("FindByIdentifier", ctx, "coach").Return(nil, boom)

		_, err := svc.Login(ctx, LoginRequest{Email: "coach", Password: "secret1"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestGetExpandsGyms(t *testing.T) {
	repo := new(MockAdminRepo)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("FindByID", ctx, "a1").Return(&GymAdmin{ID: "a1", Username: "coach", Email: "coach@gym.io"}, nil)
	repo.On("ListGyms", ctx, "a1").Return([]gym.Gym{{ID: "g1", Name: "Iron Temple"}}, nil)

	p, err := svc.Get(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, p.Gyms, 1)
	assert.Equal(t, "Iron Temple", p.Gyms[0].Name)
}

func TestGetUnknownAdmin(t *testing.T) {
	repo := new(MockAdminRepo)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("FindByID", ctx, "a9").Return(nil, ErrAdminNotFound)

	_, err := svc.Get(ctx, "a9")
	assert.ErrorIs(t, err, ErrAdminNotFound)
	repo.AssertNotCalled(t, "ListGyms", mock.Anything, mock.Anything)
}
