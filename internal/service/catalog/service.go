package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/integrations/leasingapi"
	"github.com/m04kA/SMC-LeasingGateway/internal/service/catalog/models"
)

// Service сервис каталога: поиск, карточка автомобиля, отзывы, избранное и брони
type Service struct {
	client       LeasingClient
	validator    Validator
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(client LeasingClient, validator Validator, logger Logger) *Service {
	return &Service{
		client:       client,
		validator:    validator,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Search выполняет поиск по фильтрам
// Каждый вызов идет в бэкенд, результат не кэшируется
func (s *Service) Search(ctx context.Context, sess *domain.Session, filter domain.CatalogFilter) (*models.SearchResponse, error) {
	query, err := filter.Query()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	s.logger.Info("Search: query=%s", query.Encode())

	cars, err := s.client.SearchCars(ctx, sess.Token, query)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}

	return &models.SearchResponse{
		Cars:   models.FromDomainCars(cars),
		Facets: domain.BuildFacets(cars),
	}, nil
}

// GetCar возвращает карточку автомобиля
// Признак избранного вычисляется по списку избранного; если список недоступен, считается false
func (s *Service) GetCar(ctx context.Context, sess *domain.Session, carID int64) (*models.CarDetailsResponse, error) {
	car, err := s.client.GetCar(ctx, sess.Token, carID)
	if err != nil {
		return nil, fmt.Errorf("GetCar: %w", err)
	}

	isFavorite, err := s.isFavorite(ctx, sess, carID)
	if err != nil {
		s.logger.Warn("GetCar: favorites unavailable for car=%d: %v", carID, err)
	}

	resp := &models.CarDetailsResponse{
		Car:        models.FromDomainCar(*car),
		IsFavorite: isFavorite,
	}
	if quote, err := domain.NewLeaseQuote(car, domain.DefaultDownPaymentPercent, domain.DefaultLeaseTermMonths); err == nil {
		resp.Quote = quote
	}

	return resp, nil
}

// GetReviews возвращает отзывы об автомобиле
func (s *Service) GetReviews(ctx context.Context, carID int64) ([]domain.Review, error) {
	reviews, err := s.client.GetReviews(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("GetReviews: %w", err)
	}
	return reviews, nil
}

// CreateReview оставляет отзыв
// Повторный отзыв отклоняет бэкенд, его сообщение возвращается как есть
func (s *Service) CreateReview(ctx context.Context, sess *domain.Session, carID int64, req *models.CreateReviewRequest) error {
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return ErrEmptyComment
	}
	if err := s.validator.Validate(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRating, err)
	}

	s.logger.Info("CreateReview: car=%d rating=%d", carID, req.Rating)

	err := s.client.CreateReview(ctx, sess.Token, carID, leasingapi.ReviewRequest{
		Rating:  req.Rating,
		Comment: comment,
	})
	if err != nil {
		return fmt.Errorf("CreateReview: %w", err)
	}
	return nil
}

// ListFavorites возвращает избранные автомобили
func (s *Service) ListFavorites(ctx context.Context, sess *domain.Session) ([]models.CarView, error) {
	cars, err := s.client.ListFavorites(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("ListFavorites: %w", err)
	}
	return models.FromDomainCars(cars), nil
}

// AddFavorite добавляет автомобиль в избранное
func (s *Service) AddFavorite(ctx context.Context, sess *domain.Session, carID int64) error {
	if err := s.client.AddFavorite(ctx, sess.Token, carID); err != nil {
		return fmt.Errorf("AddFavorite: %w", err)
	}
	return nil
}

// RemoveFavorite убирает автомобиль из избранного
func (s *Service) RemoveFavorite(ctx context.Context, sess *domain.Session, carID int64) error {
	if err := s.client.RemoveFavorite(ctx, sess.Token, carID); err != nil {
		return fmt.Errorf("RemoveFavorite: %w", err)
	}
	return nil
}

// ToggleFavorite переключает избранное: DELETE, если автомобиль уже в списке, иначе POST
func (s *Service) ToggleFavorite(ctx context.Context, sess *domain.Session, carID int64) (*models.FavoriteToggleResponse, error) {
	isFavorite, err := s.isFavorite(ctx, sess, carID)
	if err != nil {
		return nil, fmt.Errorf("ToggleFavorite: %w", err)
	}

	if isFavorite {
		if err := s.client.RemoveFavorite(ctx, sess.Token, carID); err != nil {
			return nil, fmt.Errorf("ToggleFavorite: %w", err)
		}
		return &models.FavoriteToggleResponse{CarID: carID, IsFavorite: false, Message: models.MsgFavoriteRemoved}, nil
	}

	if err := s.client.AddFavorite(ctx, sess.Token, carID); err != nil {
		return nil, fmt.Errorf("ToggleFavorite: %w", err)
	}
	return &models.FavoriteToggleResponse{CarID: carID, IsFavorite: true, Message: models.MsgFavoriteAdded}, nil
}

func (s *Service) isFavorite(ctx context.Context, sess *domain.Session, carID int64) (bool, error) {
	favorites, err := s.client.ListFavorites(ctx, sess.Token)
	if err != nil {
		return false, err
	}
	for _, car := range favorites {
		if car.ID == carID {
			return true, nil
		}
	}
	return false, nil
}

// QuickReserve бронирует автомобиль на сутки со страницы автомобиля
func (s *Service) QuickReserve(ctx context.Context, sess *domain.Session, carID int64) error {
	start, end := domain.NewQuickReservationWindow(s.timeProvider.Now())

	s.logger.Info("QuickReserve: car=%d until %s", carID, end.Format(domain.DateFormat))

	if err := s.client.ReserveCar(ctx, sess.Token, carID, start, end); err != nil {
		return fmt.Errorf("QuickReserve: %w", err)
	}
	return nil
}

// MyReservations возвращает брони пользователя
func (s *Service) MyReservations(ctx context.Context, sess *domain.Session) ([]models.ReservationView, error) {
	list, err := s.client.ListMyReservations(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("MyReservations: %w", err)
	}
	return models.FromDomainReservations(list), nil
}

// LeaseQuote рассчитывает условия лизинга по цене автомобиля
func (s *Service) LeaseQuote(ctx context.Context, sess *domain.Session, carID int64, downPercent, termMonths int) (*domain.LeaseDetails, error) {
	car, err := s.client.GetCar(ctx, sess.Token, carID)
	if err != nil {
		return nil, fmt.Errorf("LeaseQuote: %w", err)
	}

	quote, err := domain.NewLeaseQuote(car, downPercent, termMonths)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLeaseQuote) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuote, err)
		}
		return nil, err
	}
	return quote, nil
}
