package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// CheckoutResponse запись журнала оформления для клиента
type CheckoutResponse struct {
	ID                  int64   `json:"id"`
	CarID               int64   `json:"carId"`
	State               string  `json:"state"`
	FailedAt            *string `json:"failedAt,omitempty"`
	CarBrand            string  `json:"carBrand"`
	CarModel            string  `json:"carModel"`
	LeaseTerm           int     `json:"leaseTerm"`
	MonthlyPayment      float64 `json:"monthlyPayment"`
	DownPayment         float64 `json:"downPayment"`
	ReservationID       *int64  `json:"reservationId,omitempty"`
	ReservationReused   bool    `json:"reservationReused"`
	LeaseContractID     *int64  `json:"leaseContractId,omitempty"`
	LeaseStartDate      *string `json:"leaseStartDate,omitempty"`
	LeaseEndDate        *string `json:"leaseEndDate,omitempty"`
	PaidAt              *string `json:"paidAt,omitempty"`
	ErrorMessage        *string `json:"errorMessage,omitempty"`
	NeedsReconciliation bool    `json:"needsReconciliation"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// ReceiptResponse PDF квитанция
type ReceiptResponse struct {
	FileName string
	Content  []byte
}

// ReceiptFileName имя файла квитанции
func ReceiptFileName(id int64) string {
	return fmt.Sprintf("checkout-%d.pdf", id)
}

// FromDomainCheckout конвертирует запись журнала в ответ
func FromDomainCheckout(c *domain.Checkout) *CheckoutResponse {
	resp := &CheckoutResponse{
		ID:                  c.ID,
		CarID:               c.CarID,
		State:               string(c.State),
		CarBrand:            c.CarBrand,
		CarModel:            c.CarModel,
		LeaseTerm:           c.LeaseTerm,
		MonthlyPayment:      c.MonthlyPayment,
		DownPayment:         c.DownPayment,
		ReservationID:       c.ReservationID,
		ReservationReused:   c.ReservationReused,
		LeaseContractID:     c.LeaseContractID,
		LeaseStartDate:      formatTime(c.LeaseStartDate),
		LeaseEndDate:        formatTime(c.LeaseEndDate),
		PaidAt:              formatTime(c.PaidAt),
		ErrorMessage:        c.ErrorMessage,
		NeedsReconciliation: c.NeedsReconciliation(),
		CreatedAt:           c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           c.UpdatedAt.Format(time.RFC3339),
	}
	if c.FailedAt != nil {
		step := string(*c.FailedAt)
		resp.FailedAt = &step
	}
	return resp
}

// FromDomainCheckouts конвертирует список записей журнала
func FromDomainCheckouts(list []*domain.Checkout) []*CheckoutResponse {
	result := make([]*CheckoutResponse, 0, len(list))
	for _, c := range list {
		result = append(result, FromDomainCheckout(c))
	}
	return result
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
