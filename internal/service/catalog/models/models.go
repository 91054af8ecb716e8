package models

import (
	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// Сообщения переключения избранного
const (
	MsgFavoriteAdded   = "Машина добавлена в избранное."
	MsgFavoriteRemoved = "Машина убрана из избранного."
)

// CarView автомобиль с подписью статуса для отображения
type CarView struct {
	domain.Car
	StatusLabel string `json:"statusLabel"`
}

// FromDomainCar конвертирует автомобиль в представление
func FromDomainCar(car domain.Car) CarView {
	return CarView{Car: car, StatusLabel: car.Status.Label()}
}

// FromDomainCars конвертирует список автомобилей
func FromDomainCars(cars []domain.Car) []CarView {
	result := make([]CarView, 0, len(cars))
	for _, car := range cars {
		result = append(result, FromDomainCar(car))
	}
	return result
}

// SearchResponse результат поиска по каталогу
type SearchResponse struct {
	Cars   []CarView            `json:"cars"`
	Facets domain.CatalogFacets `json:"facets"`
}

// CarDetailsResponse карточка автомобиля
// Quote рассчитан с параметрами калькулятора по умолчанию
type CarDetailsResponse struct {
	Car        CarView              `json:"car"`
	IsFavorite bool                 `json:"isFavorite"`
	Quote      *domain.LeaseDetails `json:"quote,omitempty"`
}

// CreateReviewRequest новый отзыв
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment"`
}

// FavoriteToggleResponse состояние избранного после переключения
type FavoriteToggleResponse struct {
	CarID      int64  `json:"carId"`
	IsFavorite bool   `json:"isFavorite"`
	Message    string `json:"message"`
}

// ReservationView бронь пользователя
type ReservationView struct {
	ID               int64  `json:"id"`
	CarID            int64  `json:"carId"`
	CarBrand         string `json:"carBrand"`
	CarModel         string `json:"carModel"`
	ReservationStart string `json:"reservationStart"`
	ReservationEnd   string `json:"reservationEnd"`
	IsActive         bool   `json:"isActive"`
}

// FromDomainReservations конвертирует брони, даты выводятся как дд.мм.гггг
func FromDomainReservations(list []domain.Reservation) []ReservationView {
	result := make([]ReservationView, 0, len(list))
	for _, r := range list {
		result = append(result, ReservationView{
			ID:               r.ID,
			CarID:            r.CarID,
			CarBrand:         r.CarBrand,
			CarModel:         r.CarModel,
			ReservationStart: r.ReservationStart.Format(domain.DisplayDateFormat),
			ReservationEnd:   r.ReservationEnd.Format(domain.DisplayDateFormat),
			IsActive:         r.IsActive,
		})
	}
	return result
}
