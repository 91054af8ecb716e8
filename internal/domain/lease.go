package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-LeasingGateway/pkg/bimap"
)

// LeaseStatus статус договора лизинга в профиле
type LeaseStatus string

const (
	LeaseStatusActive    LeaseStatus = "Active"
	LeaseStatusCompleted LeaseStatus = "Completed"
)

// LeaseStatusLabels перевод статуса договора в подпись и обратно
var LeaseStatusLabels = bimap.New(
	bimap.Pair[LeaseStatus, string]{Key: LeaseStatusActive, Value: "Активный"},
	bimap.Pair[LeaseStatus, string]{Key: LeaseStatusCompleted, Value: "Завершён"},
)

// Label возвращает подпись статуса договора
func (s LeaseStatus) Label() string {
	if label, ok := LeaseStatusLabels.Get(s); ok {
		return label
	}
	return string(s)
}

// LeaseContract договор лизинга
type LeaseContract struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	CarID          int64     `json:"carId"`
	LeaseStartDate time.Time `json:"leaseStartDate"`
	LeaseEndDate   time.Time `json:"leaseEndDate"`
	TotalCost      float64   `json:"totalCost"`
}

// Payment платеж по договору лизинга
// ID совпадает с ID договора: в этом сценарии на договор приходится один первоначальный взнос
type Payment struct {
	ID          int64     `json:"id"`
	PaymentDate time.Time `json:"paymentDate"`
	Amount      float64   `json:"amount"`
	IsPaid      bool      `json:"isPaid"`
}

// LeaseDetails выбор пользователя в калькуляторе лизинга
type LeaseDetails struct {
	CarID          int64     `json:"carId"`
	MonthlyPayment float64   `json:"monthlyPayment"`
	DownPayment    float64   `json:"downPayment"`
	LeaseTerm      int       `json:"leaseTerm"` // в месяцах
	CarBrand       string    `json:"carBrand"`
	CarModel       string    `json:"carModel"`
	Status         CarStatus `json:"status,omitempty"`
}

// LeaseEndDate дата окончания лизинга: ровно start + months календарных месяцев
func LeaseEndDate(start time.Time, months int) time.Time {
	return start.AddDate(0, months, 0)
}

// ExpectedLeaseStatus статус договора, который получится при оформлении на months месяцев от now
func ExpectedLeaseStatus(now time.Time, months int) LeaseStatus {
	if LeaseEndDate(now, months).After(now) {
		return LeaseStatusActive
	}
	return LeaseStatusCompleted
}

// NewLeaseQuote рассчитывает условия лизинга для автомобиля
// downPercent - процент первоначального взноса, termMonths - срок в месяцах
func NewLeaseQuote(car *Car, downPercent int, termMonths int) (*LeaseDetails, error) {
	if downPercent < MinDownPaymentPercent || downPercent > MaxDownPaymentPercent {
		return nil, fmt.Errorf("%w: down payment must be within %d-%d%%",
			ErrInvalidLeaseQuote, MinDownPaymentPercent, MaxDownPaymentPercent)
	}
	if termMonths < MinLeaseTermMonths || termMonths > MaxLeaseTermMonths {
		return nil, fmt.Errorf("%w: lease term must be within %d-%d months",
			ErrInvalidLeaseQuote, MinLeaseTermMonths, MaxLeaseTermMonths)
	}

	share := float64(downPercent) / 100

	return &LeaseDetails{
		CarID:          car.ID,
		MonthlyPayment: round2(car.Price * (1 - share) / float64(termMonths)),
		DownPayment:    round2(car.Price * share),
		LeaseTerm:      termMonths,
		CarBrand:       car.Brand,
		CarModel:       car.Model,
		Status:         car.Status,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
