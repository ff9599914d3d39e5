package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/restom-api/internal/domain"
	"github.com/restom-api/internal/pkg/id"
	"github.com/restom-api/internal/pkg/otp"
	"github.com/restom-api/internal/pkg/validate"
)

// RequestOTPResult is returned to the client after an OTP request.
// OTP is set only in non-production mode when no mail transport is
// configured, so local testing can proceed without an inbox.
type RequestOTPResult struct {
	Message string
	OTP     string
}

// VerifyOTPResult carries the freshly created account and its session token.
type VerifyOTPResult struct {
	Token string
	User  *domain.User
}

type Service interface {
	RequestOTP(ctx context.Context, req domain.RequestOTPRequest) (*RequestOTPResult, error)
	VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*VerifyOTPResult, error)
}

type registrationStore interface {
	Upsert(ctx context.Context, reg *domain.PendingRegistration) error
	Get(ctx context.Context, email string) (*domain.PendingRegistration, error)
	IncrementAttempts(ctx context.Context, email string) error
	Delete(ctx context.Context, email string) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

type mailer interface {
	SendOTP(to, otp string) error
}

type hasher interface {
	Hash(plain string) (string, error)
	Compare(hashed, plain string) error
}

type jwtSigner interface {
	Sign(userID, email, role string) (string, error)
}

type service struct {
	regRepo  registrationStore
	userRepo userStore
	mailer   mailer
	hasher   hasher
	jwt      jwtSigner
	otpTTL   time.Duration
	devMode  bool
}

type ServiceDeps struct {
	RegistrationRepo registrationStore
	UserRepo         userStore
	Mailer           mailer
	Hasher           hasher
	JWTProvider      jwtSigner
	OTPTTL           time.Duration
	// DevMode echoes the OTP in the response when the mailer is not
	// configured. Must be false in production: there an unconfigured
	// mailer is an error, never a fallback.
	DevMode bool
}

func NewService(deps ServiceDeps) Service {
	return &service{
		regRepo:  deps.RegistrationRepo,
		userRepo: deps.UserRepo,
		mailer:   deps.Mailer,
		hasher:   deps.Hasher,
		jwt:      deps.JWTProvider,
		otpTTL:   deps.OTPTTL,
		devMode:  deps.DevMode,
	}
}

// RequestOTP validates the signup payload, writes a pending registration
// (replacing any prior one for the same email) and mails the code. The
// pending record is durable even when the mail send fails afterwards, so a
// client retry is a fresh, safe request.
func (s *service) RequestOTP(ctx context.Context, req domain.RequestOTPRequest) (*RequestOTPResult, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if err := s.checkUserConflict(ctx, req.Email, req.Phone); err != nil {
		return nil, err
	}

	code, err := otp.New()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}
	otpHash, err := s.hasher.Hash(code)
	if err != nil {
		return nil, fmt.Errorf("hash otp: %w", err)
	}
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	reg := &domain.PendingRegistration{
		Email:        req.Email,
		OTPHash:      otpHash,
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
		ExpiresAt:    now.Add(s.otpTTL).Unix(),
		Attempts:     0,
		CreatedAt:    now,
	}
	if err := s.regRepo.Upsert(ctx, reg); err != nil {
		return nil, fmt.Errorf("store pending registration: %w", err)
	}

	switch err := s.mailer.SendOTP(req.Email, code); {
	case err == nil:
		return &RequestOTPResult{Message: "OTP sent to email. Expires in 10 minutes."}, nil
	case errors.Is(err, domain.ErrMailerNotConfigured):
		if !s.devMode {
			slog.Error("mailer not configured; cannot send OTP in production")
			return nil, fmt.Errorf("failed to send OTP email: %w", domain.ErrMailerNotConfigured)
		}
		slog.Warn("mailer not configured; echoing OTP in response", "email", req.Email)
		return &RequestOTPResult{
			Message: "OTP (mocked, SMTP not configured). Expires in 10 minutes.",
			OTP:     code,
		}, nil
	default:
		return nil, fmt.Errorf("send OTP email: %w", err)
	}
}

// VerifyOTP checks the submitted code against the pending registration and,
// on success, materializes the User and consumes the record. User creation
// precedes record deletion so a crash in between leaves the registration
// retryable instead of lost.
func (s *service) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*VerifyOTPResult, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}

	reg, err := s.regRepo.Get(ctx, req.Email)
	if err != nil {
		return nil, domain.ErrOTPNotFound
	}
	if reg.ExpiresAt < time.Now().Unix() {
		if err := s.regRepo.Delete(ctx, req.Email); err != nil {
			slog.Warn("failed to delete expired registration", "email", req.Email, "err", err)
		}
		return nil, domain.ErrOTPExpired
	}
	if err := s.hasher.Compare(reg.OTPHash, req.OTP); err != nil {
		if err := s.regRepo.IncrementAttempts(ctx, req.Email); err != nil {
			slog.Warn("failed to increment OTP attempts", "email", req.Email, "err", err)
		}
		return nil, domain.ErrInvalidOTP
	}

	// Time has passed since the request-time check; a conflicting user may
	// have appeared. Re-check rather than trusting the earlier result.
	if err := s.checkUserConflict(ctx, req.Email, reg.Phone); err != nil {
		if derr := s.regRepo.Delete(ctx, req.Email); derr != nil {
			slog.Warn("failed to delete conflicting registration", "email", req.Email, "err", derr)
		}
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         reg.Name,
		Email:        req.Email,
		Phone:        reg.Phone,
		PasswordHash: reg.PasswordHash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost the creation race; the store's uniqueness constraint is
			// the serialization point.
			if derr := s.regRepo.Delete(ctx, req.Email); derr != nil {
				slog.Warn("failed to delete conflicting registration", "email", req.Email, "err", derr)
			}
		}
		return nil, err
	}
	if err := s.regRepo.Delete(ctx, req.Email); err != nil {
		slog.Warn("failed to delete consumed registration", "email", req.Email, "err", err)
	}

	token, err := s.jwt.Sign(u.UserID, u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &VerifyOTPResult{Token: token, User: u}, nil
}

func (s *service) checkUserConflict(ctx context.Context, email, phone string) error {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("user with given email or phone already exists: %w", domain.ErrConflict)
	}
	if _, err := s.userRepo.GetByPhone(ctx, phone); err == nil {
		return fmt.Errorf("user with given email or phone already exists: %w", domain.ErrConflict)
	}
	return nil
}
