package checkout

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/integrations/leasingapi"
)

// LeasingClient интерфейс клиента бэкенда лизинга
type LeasingClient interface {
	GetCar(ctx context.Context, token string, carID int64) (*domain.Car, error)
	ListReservations(ctx context.Context, token string, carID int64) ([]domain.Reservation, error)
	CreateReservation(ctx context.Context, token string, carID int64, start, end time.Time) (int64, error)
	CreateLease(ctx context.Context, token string, req leasingapi.LeaseRequest) (int64, error)
	CreatePayment(ctx context.Context, token string, payment domain.Payment) error
}

// CheckoutRepository интерфейс журнала оформлений
type CheckoutRepository interface {
	Create(ctx context.Context, c *domain.Checkout) (*domain.Checkout, error)
	Transition(ctx context.Context, c *domain.Checkout, from domain.CheckoutState) error
}

// Validator интерфейс валидатора входных данных
type Validator interface {
	Validate(i interface{}) error
}

// Metrics интерфейс счетчика оформлений по итоговому состоянию
type Metrics interface {
	IncCheckout(state string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type noopMetrics struct{}

func (noopMetrics) IncCheckout(string) {}
