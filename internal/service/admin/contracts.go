package admin

import (
	"context"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// LeasingClient интерфейс клиента админского API бэкенда
type LeasingClient interface {
	AdminList(ctx context.Context, token string, resource domain.AdminResource, page, pageSize int) ([]domain.AdminItem, error)
	AdminCreate(ctx context.Context, token string, resource domain.AdminResource, item domain.AdminItem) error
	AdminUpdate(ctx context.Context, token string, resource domain.AdminResource, id int64, item domain.AdminItem) error
	AdminDelete(ctx context.Context, token string, resource domain.AdminResource, id int64) error
}

// Exporter интерфейс генератора XLSX выгрузки
type Exporter interface {
	Generate(resource domain.AdminResource, items []domain.AdminItem) ([]byte, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
