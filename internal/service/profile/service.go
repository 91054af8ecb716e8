package profile

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/integrations/leasingapi"
	"github.com/m04kA/SMC-LeasingGateway/internal/service/profile/models"
)

// Service сервис профиля пользователя
type Service struct {
	client    LeasingClient
	validator Validator
	logger    Logger
}

// NewService создает новый экземпляр сервиса профиля
func NewService(client LeasingClient, validator Validator, logger Logger) *Service {
	return &Service{
		client:    client,
		validator: validator,
		logger:    logger,
	}
}

// GetProfile возвращает профиль с договорами
func (s *Service) GetProfile(ctx context.Context, sess *domain.Session) (*models.ProfileResponse, error) {
	p, err := s.client.GetProfile(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("GetProfile: %w", err)
	}

	s.logger.Info("GetProfile: user=%d contracts=%d", sess.UserID, len(p.Contracts))
	return models.FromDomainProfile(p), nil
}

// UpdateProfile изменяет имя, email, телефон и (если задан) пароль
func (s *Service) UpdateProfile(ctx context.Context, sess *domain.Session, req *models.UpdateProfileRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingFields, err)
	}

	err := s.client.UpdateAccount(ctx, sess.Token, leasingapi.UpdateAccountRequest{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return fmt.Errorf("UpdateProfile: %w", err)
	}

	s.logger.Info("UpdateProfile: user=%d updated", sess.UserID)
	return nil
}

// GetAnalytics запрашивает аналитику и статистику платежей параллельно
// Ошибка одного запроса не мешает другому; ошибка возвращается, только если не удалось оба
func (s *Service) GetAnalytics(ctx context.Context, sess *domain.Session) (*models.AnalyticsResponse, error) {
	var (
		resp                   models.AnalyticsResponse
		analyticsErr, statsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp.Analytics, analyticsErr = s.client.GetAnalytics(gctx, sess.Token)
		return nil
	})
	g.Go(func() error {
		resp.PaymentStats, statsErr = s.client.GetPaymentStats(gctx, sess.Token)
		return nil
	})
	_ = g.Wait()

	if analyticsErr != nil {
		s.logger.Warn("GetAnalytics: analytics failed: %v", analyticsErr)
	}
	if statsErr != nil {
		s.logger.Warn("GetAnalytics: payment stats failed: %v", statsErr)
	}
	if analyticsErr != nil && statsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalyticsUnavailable, analyticsErr)
	}

	return &resp, nil
}
