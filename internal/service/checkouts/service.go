package checkouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	checkoutRepo "github.com/m04kA/SMC-LeasingGateway/internal/infra/storage/checkout"
	"github.com/m04kA/SMC-LeasingGateway/internal/service/checkouts/models"
)

// Service чтение журнала оформлений и печать квитанций
type Service struct {
	repo         CheckoutRepository
	receipts     ReceiptGenerator
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса журнала оформлений
func NewService(repo CheckoutRepository, receipts ReceiptGenerator, logger Logger) *Service {
	return &Service{
		repo:         repo,
		receipts:     receipts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Get возвращает оформление пользователя
func (s *Service) Get(ctx context.Context, sess *domain.Session, id int64) (*models.CheckoutResponse, error) {
	c, err := s.getOwned(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainCheckout(c), nil
}

// List возвращает оформления пользователя, новые первыми
func (s *Service) List(ctx context.Context, sess *domain.Session) ([]*models.CheckoutResponse, error) {
	list, err := s.repo.ListByUser(ctx, sess.UserID)
	if err != nil {
		s.logger.Error("List: failed to list checkouts for user=%d: %v", sess.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return models.FromDomainCheckouts(list), nil
}

// Receipt печатает PDF квитанцию завершенного оформления
func (s *Service) Receipt(ctx context.Context, sess *domain.Session, id int64) (*models.ReceiptResponse, error) {
	c, err := s.getOwned(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !c.IsCompleted() {
		return nil, fmt.Errorf("%w: state %s", ErrNotCompleted, c.State)
	}

	content, err := s.receipts.Generate(c, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("Receipt: failed to render checkout id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("Receipt: checkout id=%d rendered for user=%d", id, sess.UserID)
	return &models.ReceiptResponse{
		FileName: models.ReceiptFileName(id),
		Content:  content,
	}, nil
}

// getOwned возвращает запись журнала, если она принадлежит пользователю сессии
// Чужая запись неотличима от отсутствующей
func (s *Service) getOwned(ctx context.Context, sess *domain.Session, id int64) (*domain.Checkout, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, checkoutRepo.ErrCheckoutNotFound) {
		return nil, ErrCheckoutNotFound
	}
	if err != nil {
		s.logger.Error("getOwned: failed to get checkout id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if c.UserID != sess.UserID {
		s.logger.Warn("getOwned: checkout id=%d does not belong to user=%d", id, sess.UserID)
		return nil, ErrCheckoutNotFound
	}
	return c, nil
}
