package domain

import "time"

// Role роль пользователя, определяет доступ к консоли администратора
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// RoleFromCode переводит числовой код роли из админки (0=User, 1=Admin)
func RoleFromCode(code int) string {
	switch code {
	case 0:
		return string(RoleUser)
	case 1:
		return string(RoleAdmin)
	default:
		return "Unknown"
	}
}

// User пользователь
type User struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Role        Role   `json:"role"`
}

// Profile профиль пользователя с его договорами
type Profile struct {
	FullName    string            `json:"fullName"`
	Email       string            `json:"email"`
	PhoneNumber string            `json:"phoneNumber"`
	Contracts   []ProfileContract `json:"contracts"`
}

// ProfileContract договор в профиле пользователя
type ProfileContract struct {
	ID             int64       `json:"id"`
	CarID          int64       `json:"carId"`
	CarBrand       string      `json:"carBrand"`
	CarModel       string      `json:"carModel"`
	CarPhotoURL    string      `json:"carPhotoUrl"`
	LeaseStartDate time.Time   `json:"leaseStartDate"`
	LeaseEndDate   time.Time   `json:"leaseEndDate"`
	TotalCost      float64     `json:"totalCost"`
	Status         LeaseStatus `json:"status"`
}

// MonthlyPayment ежемесячный платеж по договору
// Количество месяцев считается по календарю; при нуле и меньше возвращается полная стоимость
func (c *ProfileContract) MonthlyPayment() float64 {
	months := (c.LeaseEndDate.Year()-c.LeaseStartDate.Year())*12 +
		int(c.LeaseEndDate.Month()) - int(c.LeaseStartDate.Month())
	if months <= 0 {
		return c.TotalCost
	}
	return c.TotalCost / float64(months)
}

// Analytics аналитика лизингов пользователя
type Analytics struct {
	TotalLeases              int               `json:"totalLeases"`
	TotalPayments            float64           `json:"totalPayments"`
	AverageLeaseDurationDays float64           `json:"averageLeaseDurationDays"`
	ActiveLeases             int               `json:"activeLeases"`
	BrandPreference          []BrandPreference `json:"brandPreference"`
}

// BrandPreference количество лизингов по бренду
type BrandPreference struct {
	Brand string `json:"brand"`
	Count int    `json:"count"`
}

// PaymentStats статистика платежей по периодам
type PaymentStats struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}
