package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/restom-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	OK      bool   `json:"ok,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OTPEnvelope wraps request-otp responses. OTP is populated only in
// non-production mode when no mail transport is configured.
type OTPEnvelope struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	OTP     string `json:"otp,omitempty"`
}

// AuthEnvelope wraps verify-otp and login responses.
type AuthEnvelope struct {
	OK    bool         `json:"ok"`
	Token string       `json:"token,omitempty"`
	User  *UserSummary `json:"user,omitempty"`
}

// UserSummary is the client-facing account shape: no phone, no hash.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserSummary(u *domain.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.UserID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain sentinel errors to status codes. Anything unexpected
// is logged and surfaced as a generic 500 so internals never leak.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrOTPNotFound),
		errors.Is(err, domain.ErrOTPExpired),
		errors.Is(err, domain.ErrInvalidOTP):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrMailerNotConfigured):
		writeError(w, http.StatusInternalServerError, "failed to send OTP email, please contact support")
	default:
		slog.Error("internal error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
