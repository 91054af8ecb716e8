package catalog

import (
	"context"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/service/catalog/models"
)

type CatalogService interface {
	Search(ctx context.Context, sess *domain.Session, filter domain.CatalogFilter) (*models.SearchResponse, error)
	GetCar(ctx context.Context, sess *domain.Session, carID int64) (*models.CarDetailsResponse, error)
	GetReviews(ctx context.Context, carID int64) ([]domain.Review, error)
	CreateReview(ctx context.Context, sess *domain.Session, carID int64, req *models.CreateReviewRequest) error
	ListFavorites(ctx context.Context, sess *domain.Session) ([]models.CarView, error)
	AddFavorite(ctx context.Context, sess *domain.Session, carID int64) error
	RemoveFavorite(ctx context.Context, sess *domain.Session, carID int64) error
	ToggleFavorite(ctx context.Context, sess *domain.Session, carID int64) (*models.FavoriteToggleResponse, error)
	QuickReserve(ctx context.Context, sess *domain.Session, carID int64) error
	MyReservations(ctx context.Context, sess *domain.Session) ([]models.ReservationView, error)
	LeaseQuote(ctx context.Context, sess *domain.Session, carID int64, downPercent, termMonths int) (*domain.LeaseDetails, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
