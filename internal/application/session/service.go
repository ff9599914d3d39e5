package session

import (
	"context"
	"fmt"

	"github.com/restom-api/internal/domain"
	"github.com/restom-api/internal/pkg/validate"
)

type LoginResult struct {
	Token string
	User  *domain.User
}

type Service interface {
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type hasher interface {
	Compare(hashed, plain string) error
}

type jwtSigner interface {
	Sign(userID, email, role string) (string, error)
}

type service struct {
	userRepo userStore
	hasher   hasher
	jwt      jwtSigner
}

type ServiceDeps struct {
	UserRepo    userStore
	Hasher      hasher
	JWTProvider jwtSigner
}

func NewService(deps ServiceDeps) Service {
	return &service{userRepo: deps.UserRepo, hasher: deps.Hasher, jwt: deps.JWTProvider}
}

// Login checks credentials and issues a session token. "No such user" and
// "wrong password" produce the identical error so accounts cannot be
// enumerated.
func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(u.PasswordHash, req.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := s.jwt.Sign(u.UserID, u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{Token: token, User: u}, nil
}
