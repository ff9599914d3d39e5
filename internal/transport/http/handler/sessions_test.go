package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/restom-api/internal/application/session"
	"github.com/restom-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSessionService struct{ mock.Mock }

func (m *mockSessionService) Login(ctx context.Context, req domain.LoginRequest) (*session.LoginResult, error) {
	args := m.Called(ctx, req)
	if res, _ := args.Get(0).(*session.LoginResult); res != nil {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestLogin_InvalidBody(t *testing.T) {
	h := NewSessionHandler(nil)
	rec := postJSON(t, h.Login, "/auth/login", "not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := &mockSessionService{}
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	h := NewSessionHandler(svc)
	rec := postJSON(t, h.Login, "/auth/login", `{"email":"alice@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp MessageEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.ErrInvalidCredentials.Error(), resp.Error)
}

func TestLogin_Success(t *testing.T) {
	svc := &mockSessionService{}
	svc.On("Login", mock.Anything, domain.LoginRequest{Email: "alice@example.com", Password: "password123"}).
		Return(&session.LoginResult{
			Token: "bearer-token",
			User:  &domain.User{UserID: "user-1", Email: "alice@example.com", Role: domain.RoleUser},
		}, nil)

	h := NewSessionHandler(svc)
	rec := postJSON(t, h.Login, "/auth/login", `{"email":"alice@example.com","password":"password123"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp AuthEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "bearer-token", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "user-1", resp.User.ID)
	svc.AssertExpectations(t)
}
