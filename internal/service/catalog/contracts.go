package catalog

import (
	"context"
	"net/url"
	"time"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/integrations/leasingapi"
)

// LeasingClient интерфейс клиента бэкенда лизинга
type LeasingClient interface {
	SearchCars(ctx context.Context, token string, query url.Values) ([]domain.Car, error)
	GetCar(ctx context.Context, token string, carID int64) (*domain.Car, error)
	GetReviews(ctx context.Context, carID int64) ([]domain.Review, error)
	CreateReview(ctx context.Context, token string, carID int64, req leasingapi.ReviewRequest) error
	ListFavorites(ctx context.Context, token string) ([]domain.Car, error)
	AddFavorite(ctx context.Context, token string, carID int64) error
	RemoveFavorite(ctx context.Context, token string, carID int64) error
	ReserveCar(ctx context.Context, token string, carID int64, start, end time.Time) error
	ListMyReservations(ctx context.Context, token string) ([]domain.Reservation, error)
}

// Validator интерфейс валидатора входных данных
type Validator interface {
	Validate(i interface{}) error
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
