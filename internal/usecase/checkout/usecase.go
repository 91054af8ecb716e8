package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/integrations/leasingapi"
	"github.com/m04kA/SMC-LeasingGateway/pkg/ptr"
)

// UseCase use case оформления лизинга
// Каждый переход машины состояний сохраняется в журнал до следующего сетевого шага
type UseCase struct {
	client        LeasingClient
	repo          CheckoutRepository
	validator     Validator
	metrics       Metrics
	redirectAfter time.Duration
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil, если метрики выключены
func NewUseCase(
	client LeasingClient,
	repo CheckoutRepository,
	validator Validator,
	metrics Metrics,
	redirectAfter time.Duration,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if redirectAfter <= 0 {
		redirectAfter = domain.RedirectAfter
	}
	return &UseCase{
		client:        client,
		repo:          repo,
		validator:     validator,
		metrics:       metrics,
		redirectAfter: redirectAfter,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет оформление: проверка автомобиля, бронь, договор, первоначальный взнос
// Ни один шаг не повторяется; ошибка шага завершает оформление
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Локальные проверки, без сетевых вызовов
	if err := validateRequest(uc.validator, req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("Checkout: validation failed: %v", err)
		return nil, err
	}
	if err := validateSession(req); err != nil {
		uc.logger.Warn("Checkout: session check failed: %v", err)
		return nil, err
	}

	sess := req.Session
	uc.logger.Info("Checkout: user=%d, car=%d, term=%d, down=%.2f",
		sess.UserID, req.Lease.CarID, req.Lease.LeaseTerm, req.Lease.DownPayment)

	// 2. Открываем запись журнала
	c, err := uc.repo.Create(ctx, &domain.Checkout{
		UserID:         sess.UserID,
		CarID:          req.Lease.CarID,
		State:          domain.CheckoutStarted,
		CarBrand:       req.Lease.CarBrand,
		CarModel:       req.Lease.CarModel,
		LeaseTerm:      req.Lease.LeaseTerm,
		MonthlyPayment: req.Lease.MonthlyPayment,
		DownPayment:    req.Lease.DownPayment,
	})
	if err != nil {
		uc.logger.Error("Checkout: failed to open journal: %v", err)
		return nil, fmt.Errorf("%w: open: %v", ErrJournal, err)
	}

	// 3. Проверяем статус автомобиля
	car, err := uc.client.GetCar(ctx, sess.Token, req.Lease.CarID)
	if err != nil {
		return nil, uc.fail(ctx, c, domain.CheckoutFailed, fmt.Errorf("%w: %w", ErrCarLoad, err))
	}
	if !car.CanBeLeased() {
		uc.logger.Warn("Checkout: car id=%d has status %s", car.ID, car.Status)
		return nil, uc.fail(ctx, c, domain.CheckoutFailed, ErrCarUnavailable)
	}
	if err := uc.advance(ctx, c, domain.CheckoutCarChecked); err != nil {
		return nil, err
	}

	// 4. Подтверждаем бронь: своя действующая для Reserved, новая для Available
	if car.Status == domain.CarStatusReserved {
		reservationID, err := uc.findOwnReservation(ctx, sess, car.ID)
		if err != nil {
			return nil, uc.fail(ctx, c, domain.CheckoutFailed, err)
		}
		c.ReservationID = ptr.Ptr(reservationID)
		c.ReservationReused = true
	} else {
		start, end := domain.NewReservationWindow(uc.timeProvider.Now())
		reservationID, err := uc.client.CreateReservation(ctx, sess.Token, car.ID, start, end)
		if err != nil {
			return nil, uc.fail(ctx, c, domain.CheckoutFailed, fmt.Errorf("%w: %w", ErrReservationFailed, err))
		}
		if reservationID > 0 {
			c.ReservationID = ptr.Ptr(reservationID)
		}
	}
	if err := uc.advance(ctx, c, domain.CheckoutReservationConfirmed); err != nil {
		return nil, err
	}

	// 5. Создаем договор лизинга на LeaseTerm календарных месяцев
	leaseStart := uc.timeProvider.Now()
	leaseEnd := domain.LeaseEndDate(leaseStart, req.Lease.LeaseTerm)

	leaseID, err := uc.client.CreateLease(ctx, sess.Token, leasingapi.LeaseRequest{
		UserID:         sess.UserID,
		CarID:          car.ID,
		LeaseStartDate: leaseStart,
		LeaseEndDate:   leaseEnd,
	})
	if err != nil {
		return nil, uc.fail(ctx, c, domain.CheckoutFailed, fmt.Errorf("%w: %w", ErrLeaseFailed, err))
	}
	if leaseID <= 0 {
		return nil, uc.fail(ctx, c, domain.CheckoutFailed, ErrLeaseIDMissing)
	}

	c.LeaseContractID = ptr.Ptr(leaseID)
	c.LeaseStartDate = ptr.Ptr(leaseStart)
	c.LeaseEndDate = ptr.Ptr(leaseEnd)

	// Договор создан: с этого шага ошибки журнала только логируются и не меняют исход
	persisted := uc.record(ctx, c, c.State, domain.CheckoutLeaseCreated)

	// 6. Регистрируем первоначальный взнос
	// Договор уже создан: ошибка платежа оставляет запись payment_failed для ручной сверки
	paidAt := uc.timeProvider.Now()
	err = uc.client.CreatePayment(ctx, sess.Token, domain.Payment{
		ID:          leaseID,
		PaymentDate: paidAt,
		Amount:      req.Lease.DownPayment,
		IsPaid:      true,
	})
	if err != nil {
		uc.logger.Error("Checkout: lease id=%d created without payment, needs reconciliation", leaseID)
		return nil, uc.failFrom(ctx, c, persisted, domain.CheckoutPaymentFailed, fmt.Errorf("%w: %w", ErrPaymentFailed, err))
	}

	c.PaidAt = ptr.Ptr(paidAt)
	uc.record(ctx, c, persisted, domain.CheckoutCompleted)
	uc.metrics.IncCheckout(string(domain.CheckoutCompleted))

	uc.logger.Info("Checkout: id=%d completed, lease id=%d", c.ID, leaseID)

	return &Response{
		Checkout:      c,
		RedirectAfter: uc.redirectAfter,
	}, nil
}

// findOwnReservation ищет действующую бронь пользователя на автомобиль
func (uc *UseCase) findOwnReservation(ctx context.Context, sess *domain.Session, carID int64) (int64, error) {
	reservations, err := uc.client.ListReservations(ctx, sess.Token, carID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReservationCheck, err)
	}

	now := uc.timeProvider.Now()
	for i := range reservations {
		if reservations[i].IsHeldBy(sess.UserID, now) {
			return reservations[i].ID, nil
		}
	}

	uc.logger.Warn("Checkout: car id=%d reserved, user=%d holds no active reservation", carID, sess.UserID)
	return 0, ErrReservedByAnotherUser
}

// advance переводит запись в состояние to и сохраняет переход
func (uc *UseCase) advance(ctx context.Context, c *domain.Checkout, to domain.CheckoutState) error {
	from := c.State
	if !domain.CanTransition(from, to) {
		return fmt.Errorf("%w: transition %s -> %s is not allowed", ErrJournal, from, to)
	}

	c.State = to
	if err := uc.repo.Transition(ctx, c, from); err != nil {
		c.State = from
		uc.logger.Error("Checkout: id=%d failed to persist %s -> %s: %v", c.ID, from, to, err)
		return fmt.Errorf("%w: %s -> %s: %v", ErrJournal, from, to, err)
	}

	uc.logger.Info("Checkout: id=%d %s -> %s", c.ID, from, to)
	return nil
}

// record сохраняет переход, не прерывая оформление, и возвращает состояние записи в журнале
// При ошибке журнал остается в persisted, следующий переход выполняется от него
func (uc *UseCase) record(ctx context.Context, c *domain.Checkout, persisted, to domain.CheckoutState) domain.CheckoutState {
	from := c.State
	if !domain.CanTransition(from, to) {
		uc.logger.Error("Checkout: id=%d transition %s -> %s is not allowed", c.ID, from, to)
		return persisted
	}

	c.State = to
	if err := uc.repo.Transition(ctx, c, persisted); err != nil {
		uc.logger.Error("Checkout: id=%d failed to persist %s -> %s, journal stays at %s: %v", c.ID, from, to, persisted, err)
		return persisted
	}

	uc.logger.Info("Checkout: id=%d %s -> %s", c.ID, from, to)
	return to
}

// fail переводит запись в конечное состояние ошибки и возвращает cause
// Ошибка записи журнала только логируется: пользователь получает исходную причину
func (uc *UseCase) fail(ctx context.Context, c *domain.Checkout, to domain.CheckoutState, cause error) error {
	return uc.failFrom(ctx, c, c.State, to, cause)
}

// failFrom как fail, но журнал обновляется от состояния persisted,
// которое может отставать от c.State после неудачной записи
func (uc *UseCase) failFrom(ctx context.Context, c *domain.Checkout, persisted, to domain.CheckoutState, cause error) error {
	from := c.State
	if !domain.CanTransition(from, to) {
		uc.logger.Error("Checkout: id=%d cannot fail from %s to %s", c.ID, from, to)
		return cause
	}

	c.FailedAt = ptr.Ptr(from)
	c.ErrorMessage = ptr.Ptr(UserMessage(cause))
	c.State = to

	if err := uc.repo.Transition(ctx, c, persisted); err != nil {
		uc.logger.Error("Checkout: id=%d failed to persist failure at %s: %v", c.ID, from, err)
	}
	uc.metrics.IncCheckout(string(to))

	uc.logger.Warn("Checkout: id=%d aborted at %s: %v", c.ID, from, cause)
	return cause
}
