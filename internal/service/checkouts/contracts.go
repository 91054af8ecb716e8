package checkouts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// CheckoutRepository интерфейс чтения журнала оформлений
type CheckoutRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Checkout, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Checkout, error)
}

// ReceiptGenerator интерфейс генератора PDF квитанций
type ReceiptGenerator interface {
	Generate(c *domain.Checkout, issuedAt time.Time) ([]byte, error)
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
