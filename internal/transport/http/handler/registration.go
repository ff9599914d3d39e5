package handler

import (
	"encoding/json"
	"net/http"

	"github.com/restom-api/internal/application/registration"
	"github.com/restom-api/internal/domain"
)

// RegistrationHandler handles the OTP signup endpoints.
type RegistrationHandler struct {
	svc registration.Service
}

func NewRegistrationHandler(svc registration.Service) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

func (h *RegistrationHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.RequestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.RequestOTP(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, OTPEnvelope{OK: true, Message: result.Message, OTP: result.OTP})
}

func (h *RegistrationHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.VerifyOTP(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{OK: true, Token: result.Token, User: toUserSummary(result.User)})
}
