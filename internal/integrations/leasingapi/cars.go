package leasingapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// SearchCars ищет автомобили каталога по готовой строке запроса
func (c *Client) SearchCars(ctx context.Context, token string, query url.Values) ([]domain.Car, error) {
	cars := make([]domain.Car, 0)
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/cars/search",
		endpoint: "cars.search",
		query:    query,
		token:    token,
	}, &cars)
	if err != nil {
		return nil, err
	}
	return cars, nil
}

// GetCar возвращает автомобиль по ID
func (c *Client) GetCar(ctx context.Context, token string, carID int64) (*domain.Car, error) {
	var car domain.Car
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/cars/%d", carID),
		endpoint: "cars.get",
		token:    token,
	}, &car)
	if err != nil {
		return nil, err
	}
	return &car, nil
}

// GetReviews возвращает отзывы об автомобиле, запрос не требует токена
func (c *Client) GetReviews(ctx context.Context, carID int64) ([]domain.Review, error) {
	reviews := make([]domain.Review, 0)
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/cars/%d/reviews", carID),
		endpoint: "cars.reviews",
	}, &reviews)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview оставляет отзыв об автомобиле
func (c *Client) CreateReview(ctx context.Context, token string, carID int64, req ReviewRequest) error {
	return c.do(ctx, call{
		method:   http.MethodPost,
		path:     fmt.Sprintf("/api/cars/%d/review", carID),
		endpoint: "cars.review.create",
		token:    token,
		body:     req,
	}, nil)
}

// ListFavorites возвращает избранные автомобили пользователя
func (c *Client) ListFavorites(ctx context.Context, token string) ([]domain.Car, error) {
	cars := make([]domain.Car, 0)
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/cars/favorites",
		endpoint: "cars.favorites",
		token:    token,
	}, &cars)
	if err != nil {
		return nil, err
	}
	return cars, nil
}

// AddFavorite добавляет автомобиль в избранное
func (c *Client) AddFavorite(ctx context.Context, token string, carID int64) error {
	return c.do(ctx, call{
		method:   http.MethodPost,
		path:     fmt.Sprintf("/api/cars/favorites/%d", carID),
		endpoint: "cars.favorites.add",
		token:    token,
	}, nil)
}

// RemoveFavorite убирает автомобиль из избранного
func (c *Client) RemoveFavorite(ctx context.Context, token string, carID int64) error {
	return c.do(ctx, call{
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/api/cars/favorites/%d", carID),
		endpoint: "cars.favorites.remove",
		token:    token,
	}, nil)
}

// ReserveCar быстрая бронь со страницы автомобиля
func (c *Client) ReserveCar(ctx context.Context, token string, carID int64, start, end time.Time) error {
	return c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/cars/reserve",
		endpoint: "cars.reserve",
		token:    token,
		body: reservationRequest{
			CarID:            carID,
			ReservationStart: formatTime(start),
			ReservationEnd:   formatTime(end),
		},
	}, nil)
}

// ListMyReservations возвращает брони текущего пользователя
func (c *Client) ListMyReservations(ctx context.Context, token string) ([]domain.Reservation, error) {
	list := make([]reservationDTO, 0)
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/cars/reservations",
		endpoint: "cars.reservations",
		token:    token,
	}, &list)
	if err != nil {
		return nil, err
	}
	return reservationsToDomain(list), nil
}
