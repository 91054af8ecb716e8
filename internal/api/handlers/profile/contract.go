package profile

import (
	"context"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/service/profile/models"
)

type ProfileService interface {
	GetProfile(ctx context.Context, sess *domain.Session) (*models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, sess *domain.Session, req *models.UpdateProfileRequest) error
	GetAnalytics(ctx context.Context, sess *domain.Session) (*models.AnalyticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
