package profile

import (
	"context"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/integrations/leasingapi"
)

// LeasingClient интерфейс клиента бэкенда лизинга
type LeasingClient interface {
	GetProfile(ctx context.Context, token string) (*domain.Profile, error)
	GetAnalytics(ctx context.Context, token string) (*domain.Analytics, error)
	GetPaymentStats(ctx context.Context, token string) (*domain.PaymentStats, error)
	UpdateAccount(ctx context.Context, token string, req leasingapi.UpdateAccountRequest) error
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
