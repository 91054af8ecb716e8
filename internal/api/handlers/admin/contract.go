package admin

import (
	"context"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/service/admin/models"
)

type AdminService interface {
	List(ctx context.Context, sess *domain.Session, req *models.ListRequest) (*models.ListResponse, error)
	Schema(resource domain.AdminResource, editing bool) *models.SchemaResponse
	Create(ctx context.Context, sess *domain.Session, resource domain.AdminResource, item domain.AdminItem) error
	Update(ctx context.Context, sess *domain.Session, resource domain.AdminResource, id int64, item domain.AdminItem) error
	Delete(ctx context.Context, sess *domain.Session, resource domain.AdminResource, id int64) error
	Pickers(ctx context.Context, sess *domain.Session) *models.PickersResponse
	Export(ctx context.Context, sess *domain.Session, req *models.ListRequest) (*models.ExportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
