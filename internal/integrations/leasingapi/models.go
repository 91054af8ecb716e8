package leasingapi

import (
	"time"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// isoLayout формат дат в запросах к бэкенду (UTC, миллисекунды)
const isoLayout = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// parseTime разбирает дату из ответа бэкенда, некорректная дата дает нулевое время
func parseTime(raw string) time.Time {
	t, _ := domain.ParseBackendTime(raw)
	return t
}

// LoginRequest запрос входа
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest запрос регистрации
type RegisterRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// TokenResponse ответ входа и регистрации
type TokenResponse struct {
	Token string `json:"token"`
}

// MeResponse текущий пользователь
type MeResponse struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}

// UpdateAccountRequest изменение учетных данных, пустой пароль не меняется
type UpdateAccountRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password,omitempty"`
}

// ReviewRequest новый отзыв
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// reservationRequest тело создания брони (и быстрой брони)
type reservationRequest struct {
	CarID            int64  `json:"carId"`
	ReservationStart string `json:"reservationStart"`
	ReservationEnd   string `json:"reservationEnd"`
}

// reservationDTO бронь в ответах бэкенда
type reservationDTO struct {
	ID               int64  `json:"id"`
	CarID            int64  `json:"carId"`
	UserID           int64  `json:"userId"`
	ReservationStart string `json:"reservationStart"`
	ReservationEnd   string `json:"reservationEnd"`
	IsActive         bool   `json:"isActive"`
	CarBrand         string `json:"carBrand"`
	CarModel         string `json:"carModel"`
}

func (r reservationDTO) toDomain() domain.Reservation {
	return domain.Reservation{
		ID:               r.ID,
		CarID:            r.CarID,
		UserID:           r.UserID,
		ReservationStart: parseTime(r.ReservationStart),
		ReservationEnd:   parseTime(r.ReservationEnd),
		IsActive:         r.IsActive,
		CarBrand:         r.CarBrand,
		CarModel:         r.CarModel,
	}
}

func reservationsToDomain(list []reservationDTO) []domain.Reservation {
	result := make([]domain.Reservation, 0, len(list))
	for _, r := range list {
		result = append(result, r.toDomain())
	}
	return result
}

// LeaseRequest создание договора лизинга
type LeaseRequest struct {
	UserID         int64
	CarID          int64
	LeaseStartDate time.Time
	LeaseEndDate   time.Time
}

type leaseRequestDTO struct {
	UserID         int64  `json:"userId"`
	CarID          int64  `json:"carId"`
	LeaseStartDate string `json:"leaseStartDate"`
	LeaseEndDate   string `json:"leaseEndDate"`
}

// leaseResponse ID может отсутствовать, это проверяет вызывающая сторона
type leaseResponse struct {
	ID *int64 `json:"id"`
}

type paymentDTO struct {
	ID          int64   `json:"id"`
	PaymentDate string  `json:"paymentDate"`
	Amount      float64 `json:"amount"`
	IsPaid      bool    `json:"isPaid"`
}

type profileDTO struct {
	FullName    string        `json:"fullName"`
	Email       string        `json:"email"`
	PhoneNumber string        `json:"phoneNumber"`
	Contracts   []contractDTO `json:"contracts"`
}

type contractDTO struct {
	ID             int64   `json:"id"`
	CarID          int64   `json:"carId"`
	CarBrand       string  `json:"carBrand"`
	CarModel       string  `json:"carModel"`
	CarPhotoURL    string  `json:"carPhotoUrl"`
	LeaseStartDate string  `json:"leaseStartDate"`
	LeaseEndDate   string  `json:"leaseEndDate"`
	TotalCost      float64 `json:"totalCost"`
	Status         string  `json:"status"`
}

func (p profileDTO) toDomain() *domain.Profile {
	contracts := make([]domain.ProfileContract, 0, len(p.Contracts))
	for _, c := range p.Contracts {
		contracts = append(contracts, domain.ProfileContract{
			ID:             c.ID,
			CarID:          c.CarID,
			CarBrand:       c.CarBrand,
			CarModel:       c.CarModel,
			CarPhotoURL:    c.CarPhotoURL,
			LeaseStartDate: parseTime(c.LeaseStartDate),
			LeaseEndDate:   parseTime(c.LeaseEndDate),
			TotalCost:      c.TotalCost,
			Status:         domain.LeaseStatus(c.Status),
		})
	}
	return &domain.Profile{
		FullName:    p.FullName,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
		Contracts:   contracts,
	}
}

// adminPage страница админки в обертке {items: [...]}
type adminPage struct {
	Items []domain.AdminItem `json:"items"`
}
