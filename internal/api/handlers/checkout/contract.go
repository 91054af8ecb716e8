package checkout

import (
	"context"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	checkoutsModels "github.com/m04kA/SMC-LeasingGateway/internal/service/checkouts/models"
	checkoutUC "github.com/m04kA/SMC-LeasingGateway/internal/usecase/checkout"
)

type CheckoutUseCase interface {
	Execute(ctx context.Context, req *checkoutUC.Request) (*checkoutUC.Response, error)
}

type CheckoutService interface {
	Get(ctx context.Context, sess *domain.Session, id int64) (*checkoutsModels.CheckoutResponse, error)
	List(ctx context.Context, sess *domain.Session) ([]*checkoutsModels.CheckoutResponse, error)
	Receipt(ctx context.Context, sess *domain.Session, id int64) (*checkoutsModels.ReceiptResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
