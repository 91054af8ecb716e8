package auth

import (
	"context"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/service/session/models"
)

type SessionService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.SessionResponse, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.SessionResponse, error)
	Logout(ctx context.Context, sessionID string) error
	RefreshRole(ctx context.Context, sess *domain.Session) *models.MeResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
