package user

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/restom-api/internal/domain"
	"github.com/restom-api/internal/pkg/id"
	"github.com/restom-api/internal/pkg/validate"
)

type Service interface {
	CreateAdmin(ctx context.Context, req domain.CreateAdminRequest) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.User, string, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

type hasher interface {
	Hash(plain string) (string, error)
}

type service struct {
	repo     userStore
	hasher   hasher
	adminKey string
}

type ServiceDeps struct {
	UserRepo userStore
	Hasher   hasher
	AdminKey string
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.UserRepo, hasher: deps.Hasher, adminKey: deps.AdminKey}
}

// CreateAdmin creates an admin account directly, bypassing the OTP flow.
// The admin key is checked before anything else so a bad key leaks nothing
// about payload validity.
func (s *service) CreateAdmin(ctx context.Context, req domain.CreateAdminRequest) (*domain.User, error) {
	if s.adminKey == "" || subtle.ConstantTimeCompare([]byte(req.AdminKey), []byte(s.adminKey)) != 1 {
		return nil, fmt.Errorf("invalid admin key: %w", domain.ErrForbidden)
	}
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("user already exists: %w", domain.ErrConflict)
	}
	if _, err := s.repo.GetByPhone(ctx, req.Phone); err == nil {
		return nil, fmt.Errorf("user already exists: %w", domain.ErrConflict)
	}
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.User, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}
