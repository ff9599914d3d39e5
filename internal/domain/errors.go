package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrBadRequest         = errors.New("bad request")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// OTP flow errors. ErrOTPNotFound deliberately covers both "never
	// requested" and "expired and swept" so callers cannot tell which.
	ErrOTPNotFound = errors.New("no OTP request found or OTP expired")
	ErrOTPExpired  = errors.New("OTP expired")
	ErrInvalidOTP  = errors.New("invalid OTP")

	// ErrMailerNotConfigured is returned by the mailer when no SMTP
	// transport is available, as opposed to a transport failure.
	ErrMailerNotConfigured = errors.New("email transport not configured")
)
