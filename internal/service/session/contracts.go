package session

import (
	"context"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/integrations/leasingapi"
)

// SessionRepository интерфейс хранилища сессий
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	UpdateIdentity(ctx context.Context, id string, role domain.Role, userID int64) error
	Delete(ctx context.Context, id string) error
}

// LeasingClient интерфейс клиента бэкенда лизинга
type LeasingClient interface {
	Login(ctx context.Context, req leasingapi.LoginRequest) (string, error)
	Register(ctx context.Context, req leasingapi.RegisterRequest) (string, error)
	Me(ctx context.Context, token string) (*leasingapi.MeResponse, error)
}

// Validator интерфейс валидатора входных данных
type Validator interface {
	Validate(i interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
