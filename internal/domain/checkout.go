package domain

import "time"

// CheckoutState состояние оформления лизинга
type CheckoutState string

const (
	CheckoutStarted              CheckoutState = "started"
	CheckoutCarChecked           CheckoutState = "car_checked"
	CheckoutReservationConfirmed CheckoutState = "reservation_confirmed"
	CheckoutLeaseCreated         CheckoutState = "lease_created"
	CheckoutCompleted            CheckoutState = "completed"

	// CheckoutFailed оформление прервано до создания договора, на бэкенде
	// могла остаться только бронь, которая истекает сама
	CheckoutFailed CheckoutState = "failed"

	// CheckoutPaymentFailed договор создан, платеж нет. Автоматической компенсации нет,
	// запись ждет ручной сверки
	CheckoutPaymentFailed CheckoutState = "payment_failed"
)

// checkoutTransitions допустимые переходы машины состояний
var checkoutTransitions = map[CheckoutState][]CheckoutState{
	CheckoutStarted:              {CheckoutCarChecked, CheckoutFailed},
	CheckoutCarChecked:           {CheckoutReservationConfirmed, CheckoutFailed},
	CheckoutReservationConfirmed: {CheckoutLeaseCreated, CheckoutFailed},
	CheckoutLeaseCreated:         {CheckoutCompleted, CheckoutPaymentFailed},
}

// CanTransition проверяет допустимость перехода from -> to
func CanTransition(from, to CheckoutState) bool {
	for _, next := range checkoutTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal возвращает true для конечных состояний
func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutCompleted || s == CheckoutFailed || s == CheckoutPaymentFailed
}

// Checkout запись журнала оформления лизинга
type Checkout struct {
	ID     int64
	UserID int64
	CarID  int64
	State  CheckoutState

	// Шаг, на котором оформление остановилось (последнее успешное состояние перед ошибкой)
	FailedAt *CheckoutState

	CarBrand       string
	CarModel       string
	LeaseTerm      int
	MonthlyPayment float64
	DownPayment    float64

	ReservationID     *int64
	ReservationReused bool
	LeaseContractID   *int64
	LeaseStartDate    *time.Time
	LeaseEndDate      *time.Time
	PaidAt            *time.Time

	ErrorMessage *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NeedsReconciliation возвращает true, если договор создан без платежа
func (c *Checkout) NeedsReconciliation() bool {
	return c.State == CheckoutPaymentFailed
}

// IsCompleted возвращает true для успешно завершенного оформления
func (c *Checkout) IsCompleted() bool {
	return c.State == CheckoutCompleted
}
