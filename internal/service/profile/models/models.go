package models

import (
	"math"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// ProfileResponse профиль пользователя
type ProfileResponse struct {
	FullName    string         `json:"fullName"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phoneNumber"`
	Contracts   []ContractView `json:"contracts"`
}

// ContractView договор с рассчитанным ежемесячным платежом
type ContractView struct {
	ID             int64              `json:"id"`
	CarID          int64              `json:"carId"`
	CarBrand       string             `json:"carBrand"`
	CarModel       string             `json:"carModel"`
	CarPhotoURL    string             `json:"carPhotoUrl"`
	LeaseStartDate string             `json:"leaseStartDate"` // дд.мм.гггг
	LeaseEndDate   string             `json:"leaseEndDate"`   // дд.мм.гггг
	TotalCost      float64            `json:"totalCost"`
	MonthlyPayment float64            `json:"monthlyPayment"`
	Status         domain.LeaseStatus `json:"status"`
	StatusLabel    string             `json:"statusLabel"`
}

// FromDomainProfile конвертирует профиль в ответ
func FromDomainProfile(p *domain.Profile) *ProfileResponse {
	contracts := make([]ContractView, 0, len(p.Contracts))
	for i := range p.Contracts {
		c := &p.Contracts[i]
		contracts = append(contracts, ContractView{
			ID:             c.ID,
			CarID:          c.CarID,
			CarBrand:       c.CarBrand,
			CarModel:       c.CarModel,
			CarPhotoURL:    c.CarPhotoURL,
			LeaseStartDate: c.LeaseStartDate.Format(domain.DisplayDateFormat),
			LeaseEndDate:   c.LeaseEndDate.Format(domain.DisplayDateFormat),
			TotalCost:      c.TotalCost,
			MonthlyPayment: math.Round(c.MonthlyPayment()*100) / 100,
			Status:         c.Status,
			StatusLabel:    c.Status.Label(),
		})
	}
	return &ProfileResponse{
		FullName:    p.FullName,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
		Contracts:   contracts,
	}
}

// UpdateProfileRequest изменение учетных данных, пустой пароль не меняется
type UpdateProfileRequest struct {
	FullName    string `json:"fullName" validate:"required"`
	Email       string `json:"email" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password"`
}

// AnalyticsResponse аналитика и статистика платежей
// Каждая часть может отсутствовать, если бэкенд ее не отдал
type AnalyticsResponse struct {
	Analytics    *domain.Analytics    `json:"analytics,omitempty"`
	PaymentStats *domain.PaymentStats `json:"paymentStats,omitempty"`
}
