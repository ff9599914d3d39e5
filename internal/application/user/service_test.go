package user

import (
	"context"
	"errors"
	"testing"

	"github.com/restom-api/internal/domain"
	"github.com/restom-api/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error) {
	args := m.Called(ctx, limit, cursor)
	users, _ := args.Get(0).([]domain.User)
	return users, args.String(1), args.Error(2)
}

const testAdminKey = "super-secret-admin-key"

func newService(us *mockUserStore, adminKey string) Service {
	return NewService(ServiceDeps{
		UserRepo: us,
		Hasher:   hash.NewBcrypt(bcrypt.MinCost),
		AdminKey: adminKey,
	})
}

func adminReq() domain.CreateAdminRequest {
	return domain.CreateAdminRequest{
		Name:     "Boss",
		Email:    "boss@example.com",
		Phone:    "5559999",
		Password: "password123",
		AdminKey: testAdminKey,
	}
}

func TestCreateAdmin_WrongKey(t *testing.T) {
	svc := newService(nil, testAdminKey)
	req := adminReq()
	req.AdminKey = "wrong"
	_, err := svc.CreateAdmin(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

// A bad key must win over a bad payload: the caller learns nothing about
// field validation without the key.
func TestCreateAdmin_WrongKeyBeatsValidation(t *testing.T) {
	svc := newService(nil, testAdminKey)
	_, err := svc.CreateAdmin(context.Background(), domain.CreateAdminRequest{AdminKey: "wrong"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.False(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreateAdmin_NoKeyConfigured(t *testing.T) {
	svc := newService(nil, "")
	req := adminReq()
	req.AdminKey = ""
	_, err := svc.CreateAdmin(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestCreateAdmin_MissingFields(t *testing.T) {
	svc := newService(nil, testAdminKey)
	_, err := svc.CreateAdmin(context.Background(), domain.CreateAdminRequest{AdminKey: testAdminKey})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreateAdmin_EmailConflict(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "boss@example.com").Return(&domain.User{}, nil)

	svc := newService(us, testAdminKey)
	_, err := svc.CreateAdmin(context.Background(), adminReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestCreateAdmin_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "boss@example.com").Return(nil, domain.ErrNotFound)
	us.On("GetByPhone", mock.Anything, "5559999").Return(nil, domain.ErrNotFound)

	var created *domain.User
	us.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.User) }).
		Return(nil)

	svc := newService(us, testAdminKey)
	u, err := svc.CreateAdmin(context.Background(), adminReq())

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, "boss@example.com", u.Email)
	assert.NotEmpty(t, u.UserID)
	assert.NotEqual(t, "password123", u.PasswordHash)

	require.NotNil(t, created)
	assert.Equal(t, u, created)
	us.AssertExpectations(t)
}

func TestList_DefaultsLimit(t *testing.T) {
	us := &mockUserStore{}
	us.On("ScanPage", mock.Anything, int32(50), "").Return([]domain.User{{UserID: "u1"}}, "next", nil)

	svc := newService(us, testAdminKey)
	users, cursor, err := svc.List(context.Background(), 0, "")

	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "next", cursor)
	us.AssertExpectations(t)
}
