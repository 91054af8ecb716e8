package domain

import "time"

// Reservation короткая бронь автомобиля
type Reservation struct {
	ID               int64     `json:"id"`
	CarID            int64     `json:"carId"`
	UserID           int64     `json:"userId"`
	ReservationStart time.Time `json:"reservationStart"`
	ReservationEnd   time.Time `json:"reservationEnd"`
	IsActive         bool      `json:"isActive"`

	// Денормализованные данные, которые бэкенд отдает в списке броней пользователя
	CarBrand string `json:"carBrand,omitempty"`
	CarModel string `json:"carModel,omitempty"`
}

// IsHeldBy проверяет, что бронь принадлежит пользователю и еще не истекла
// Проверка рекомендательная: окончательное решение принимает бэкенд
func (r *Reservation) IsHeldBy(userID int64, now time.Time) bool {
	return r.UserID == userID && r.ReservationEnd.After(now)
}

// NewReservationWindow возвращает окно брони [now, now+ReservationHold]
func NewReservationWindow(now time.Time) (time.Time, time.Time) {
	return now, now.Add(ReservationHold)
}

// NewQuickReservationWindow окно быстрой брони со страницы автомобиля: [now, now+1 день]
func NewQuickReservationWindow(now time.Time) (time.Time, time.Time) {
	return now, now.AddDate(0, 0, 1)
}
