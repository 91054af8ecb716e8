package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LeasingGateway/internal/api/handlers"
	"github.com/m04kA/SMC-LeasingGateway/internal/api/middleware"
	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/integrations/leasingapi"
	sessionService "github.com/m04kA/SMC-LeasingGateway/internal/service/session"
	"github.com/m04kA/SMC-LeasingGateway/internal/service/session/models"
	"github.com/m04kA/SMC-LeasingGateway/pkg/logger"
)

type fakeService struct {
	err       error
	loggedOut string
	logoutErr error
}

func (f *fakeService) Login(_ context.Context, _ *models.LoginRequest) (*models.SessionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.SessionResponse{SessionID: "s1", Role: domain.RoleAdmin, AdminConsole: true}, nil
}

func (f *fakeService) Register(_ context.Context, _ *models.RegisterRequest) (*models.SessionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.SessionResponse{SessionID: "s2", Role: domain.RoleUser, UserID: 9}, nil
}

func (f *fakeService) Logout(_ context.Context, sessionID string) error {
	f.loggedOut = sessionID
	return f.logoutErr
}

func (f *fakeService) RefreshRole(context.Context, *domain.Session) *models.MeResponse {
	return &models.MeResponse{}
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandler_Login(t *testing.T) {
	h := NewHandler(&fakeService{}, logger.NewNop())

	rec := post(h.Login, `{"email":"a@b.c","password":"secret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "s1", body.SessionID)
	assert.True(t, body.AdminConsole)
}

func TestHandler_Register_Created(t *testing.T) {
	h := NewHandler(&fakeService{}, logger.NewNop())

	rec := post(h.Register, `{"fullName":"Иван","email":"a@b.c","phoneNumber":"+79990000000","password":"secret","agreed":true}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandler_SessionErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"empty credentials", sessionService.ErrEmptyCredentials, http.StatusBadRequest, msgEmptyCredentials},
		{"short password", sessionService.ErrShortPassword, http.StatusBadRequest, msgShortPassword},
		{"no token", sessionService.ErrTokenMissing, http.StatusBadGateway, msgTokenMissing},
		{"internal", fmt.Errorf("%w: db down", sessionService.ErrInternal), http.StatusInternalServerError, "внутренняя ошибка сервера"},
		{
			name:       "wrong password",
			err:        fmt.Errorf("Login: %w", &leasingapi.APIError{StatusCode: http.StatusUnauthorized, Message: "Неверный email или пароль"}),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Неверный email или пароль",
		},
		{
			name:       "backend failure without message",
			err:        fmt.Errorf("Login: %w", &leasingapi.APIError{StatusCode: http.StatusInternalServerError}),
			wantStatus: http.StatusBadGateway,
			wantMsg:    msgLoginFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())

			rec := post(h.Login, `{"email":"a@b.c","password":"x"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestHandler_Logout(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), &domain.Session{ID: "s1"}))
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s1", svc.loggedOut)
	assert.Contains(t, rec.Body.String(), msgLoggedOut)
}
