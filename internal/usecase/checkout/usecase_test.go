package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/integrations/leasingapi"
	"github.com/m04kA/SMC-LeasingGateway/pkg/logger"
	"github.com/m04kA/SMC-LeasingGateway/pkg/validation"
)

var testNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type reservationCall struct {
	carID      int64
	start, end time.Time
}

type fakeClient struct {
	car       *domain.Car
	carErr    error
	resList   []domain.Reservation
	resErr    error
	createID  int64
	createErr error
	leaseID   int64
	leaseErr  error
	payErr    error

	calls        []string
	reservations []reservationCall
	leases       []leasingapi.LeaseRequest
	payments     []domain.Payment
}

func (c *fakeClient) GetCar(_ context.Context, _ string, _ int64) (*domain.Car, error) {
	c.calls = append(c.calls, "GetCar")
	return c.car, c.carErr
}

func (c *fakeClient) ListReservations(_ context.Context, _ string, _ int64) ([]domain.Reservation, error) {
	c.calls = append(c.calls, "ListReservations")
	return c.resList, c.resErr
}

func (c *fakeClient) CreateReservation(_ context.Context, _ string, carID int64, start, end time.Time) (int64, error) {
	c.calls = append(c.calls, "CreateReservation")
	c.reservations = append(c.reservations, reservationCall{carID: carID, start: start, end: end})
	return c.createID, c.createErr
}

func (c *fakeClient) CreateLease(_ context.Context, _ string, req leasingapi.LeaseRequest) (int64, error) {
	c.calls = append(c.calls, "CreateLease")
	c.leases = append(c.leases, req)
	return c.leaseID, c.leaseErr
}

func (c *fakeClient) CreatePayment(_ context.Context, _ string, payment domain.Payment) error {
	c.calls = append(c.calls, "CreatePayment")
	c.payments = append(c.payments, payment)
	return c.payErr
}

type fakeRepo struct {
	states        []domain.CheckoutState
	last          domain.Checkout
	transitionErr error
	failOn        domain.CheckoutState // переход в это состояние завершается ошибкой
}

func (r *fakeRepo) Create(_ context.Context, c *domain.Checkout) (*domain.Checkout, error) {
	c.ID = 42
	r.states = append(r.states, c.State)
	r.last = *c
	return c, nil
}

func (r *fakeRepo) Transition(_ context.Context, c *domain.Checkout, from domain.CheckoutState) error {
	if r.transitionErr != nil {
		return r.transitionErr
	}
	if r.failOn != "" && c.State == r.failOn {
		return errors.New("db down")
	}
	if r.last.State != from {
		return errors.New("state conflict")
	}
	r.states = append(r.states, c.State)
	r.last = *c
	return nil
}

type fakeMetrics struct{ states []string }

func (m *fakeMetrics) IncCheckout(state string) { m.states = append(m.states, state) }

func newTestUseCase(client *fakeClient, repo *fakeRepo, m *fakeMetrics) *UseCase {
	uc := NewUseCase(client, repo, validation.New(), m, 0, logger.NewNop())
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		Session: &domain.Session{ID: "sid", Token: "tok", UserID: 7},
		Lease: domain.LeaseDetails{
			CarID:          3,
			MonthlyPayment: 1000,
			DownPayment:    2400,
			LeaseTerm:      12,
			CarBrand:       "BMW",
			CarModel:       "X5",
		},
		Card:   Card{Number: "4111 1111 1111 1111", Holder: "IVAN", Expiry: "12/30", CVV: "123"},
		Agreed: true,
	}
}

func TestUseCase_AvailableCar(t *testing.T) {
	client := &fakeClient{car: &domain.Car{ID: 3, Status: domain.CarStatusAvailable}, createID: 5, leaseID: 11}
	repo := &fakeRepo{}
	m := &fakeMetrics{}

	resp, err := newTestUseCase(client, repo, m).Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"GetCar", "CreateReservation", "CreateLease", "CreatePayment"}, client.calls)

	require.Len(t, client.reservations, 1)
	assert.Equal(t, testNow, client.reservations[0].start)
	assert.Equal(t, testNow.Add(24*time.Hour), client.reservations[0].end)

	require.Len(t, client.leases, 1)
	assert.Equal(t, int64(7), client.leases[0].UserID)
	assert.Equal(t, testNow, client.leases[0].LeaseStartDate)
	assert.Equal(t, time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC), client.leases[0].LeaseEndDate)

	require.Len(t, client.payments, 1)
	assert.Equal(t, domain.Payment{ID: 11, PaymentDate: testNow, Amount: 2400, IsPaid: true}, client.payments[0])

	assert.Equal(t, []domain.CheckoutState{
		domain.CheckoutStarted,
		domain.CheckoutCarChecked,
		domain.CheckoutReservationConfirmed,
		domain.CheckoutLeaseCreated,
		domain.CheckoutCompleted,
	}, repo.states)

	assert.Equal(t, domain.RedirectAfter, resp.RedirectAfter)
	assert.True(t, resp.Checkout.IsCompleted())
	assert.Equal(t, int64(5), *resp.Checkout.ReservationID)
	assert.False(t, resp.Checkout.ReservationReused)
	assert.Equal(t, int64(11), *resp.Checkout.LeaseContractID)
	assert.Equal(t, []string{"completed"}, m.states)
}

func TestUseCase_LeasedCar(t *testing.T) {
	client := &fakeClient{car: &domain.Car{ID: 3, Status: domain.CarStatusLeased}}
	repo := &fakeRepo{}

	_, err := newTestUseCase(client, repo, &fakeMetrics{}).Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrCarUnavailable)

	assert.Equal(t, []string{"GetCar"}, client.calls)
	assert.Equal(t, domain.CheckoutFailed, repo.last.State)
	require.NotNil(t, repo.last.FailedAt)
	assert.Equal(t, domain.CheckoutStarted, *repo.last.FailedAt)
	assert.Equal(t, MsgCarUnavailable, *repo.last.ErrorMessage)
}

func TestUseCase_ReservedByAnotherUser(t *testing.T) {
	client := &fakeClient{
		car: &domain.Car{ID: 3, Status: domain.CarStatusReserved},
		resList: []domain.Reservation{
			{ID: 1, UserID: 99, ReservationEnd: testNow.Add(time.Hour)},
			{ID: 2, UserID: 7, ReservationEnd: testNow.Add(-time.Hour)},
		},
	}
	repo := &fakeRepo{}

	_, err := newTestUseCase(client, repo, &fakeMetrics{}).Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrReservedByAnotherUser)

	assert.Equal(t, []string{"GetCar", "ListReservations"}, client.calls)
	assert.Empty(t, client.leases)
	assert.Equal(t, domain.CheckoutCarChecked, *repo.last.FailedAt)
}

func TestUseCase_ReservedByUser(t *testing.T) {
	client := &fakeClient{
		car:     &domain.Car{ID: 3, Status: domain.CarStatusReserved},
		resList: []domain.Reservation{{ID: 8, UserID: 7, ReservationEnd: testNow.Add(time.Hour)}},
		leaseID: 11,
	}
	repo := &fakeRepo{}

	resp, err := newTestUseCase(client, repo, &fakeMetrics{}).Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"GetCar", "ListReservations", "CreateLease", "CreatePayment"}, client.calls)
	assert.Empty(t, client.reservations)
	assert.True(t, resp.Checkout.ReservationReused)
	assert.Equal(t, int64(8), *resp.Checkout.ReservationID)
}

func TestUseCase_LeaseFailureSkipsPayment(t *testing.T) {
	client := &fakeClient{
		car:      &domain.Car{ID: 3, Status: domain.CarStatusAvailable},
		leaseErr: &leasingapi.APIError{StatusCode: 400, Message: "Автомобиль уже в лизинге"},
	}
	repo := &fakeRepo{}

	_, err := newTestUseCase(client, repo, &fakeMetrics{}).Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrLeaseFailed)

	assert.Empty(t, client.payments)
	assert.Equal(t, "Автомобиль уже в лизинге", UserMessage(err))
	assert.Equal(t, domain.CheckoutFailed, repo.last.State)
}

func TestUseCase_LeaseIDMissing(t *testing.T) {
	client := &fakeClient{car: &domain.Car{ID: 3, Status: domain.CarStatusAvailable}}
	repo := &fakeRepo{}

	_, err := newTestUseCase(client, repo, &fakeMetrics{}).Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrLeaseIDMissing)

	assert.Empty(t, client.payments)
	assert.Equal(t, MsgLeaseIDMissing, UserMessage(err))
}

func TestUseCase_PaymentFailureNeedsReconciliation(t *testing.T) {
	client := &fakeClient{
		car:     &domain.Car{ID: 3, Status: domain.CarStatusAvailable},
		leaseID: 11,
		payErr:  &leasingapi.APIError{StatusCode: 500},
	}
	repo := &fakeRepo{}
	m := &fakeMetrics{}

	_, err := newTestUseCase(client, repo, m).Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrPaymentFailed)

	assert.Equal(t, domain.CheckoutPaymentFailed, repo.last.State)
	assert.True(t, repo.last.NeedsReconciliation())
	assert.Equal(t, int64(11), *repo.last.LeaseContractID)
	assert.Equal(t, domain.CheckoutLeaseCreated, *repo.last.FailedAt)
	assert.Equal(t, MsgCheckoutFailed, UserMessage(err))
	assert.Equal(t, []string{"payment_failed"}, m.states)
}

func TestUseCase_CarLoadUnavailable(t *testing.T) {
	client := &fakeClient{carErr: unavailableErr()}
	repo := &fakeRepo{}

	_, err := newTestUseCase(client, repo, &fakeMetrics{}).Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrCarLoad)
	assert.Equal(t, leasingapi.MsgUnavailable, UserMessage(err))
}

func unavailableErr() error {
	return errors.Join(leasingapi.ErrUnavailable, errors.New("dial tcp: connection refused"))
}

func TestUseCase_JournalFailureAborts(t *testing.T) {
	client := &fakeClient{car: &domain.Car{ID: 3, Status: domain.CarStatusAvailable}}
	repo := &fakeRepo{transitionErr: errors.New("db down")}

	_, err := newTestUseCase(client, repo, &fakeMetrics{}).Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrJournal)
	assert.Equal(t, []string{"GetCar"}, client.calls)
}

func TestUseCase_Prechecks(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
		want   error
	}{
		{name: "card number of spaces", modify: func(r *Request) { r.Card.Number = "   " }, want: ErrCardNumberRequired},
		{name: "holder", modify: func(r *Request) { r.Card.Holder = "" }, want: ErrCardHolderRequired},
		{name: "expiry", modify: func(r *Request) { r.Card.Expiry = "" }, want: ErrCardExpiryRequired},
		{name: "cvv", modify: func(r *Request) { r.Card.CVV = "" }, want: ErrCVVRequired},
		{name: "agreement", modify: func(r *Request) { r.Agreed = false }, want: ErrAgreementRequired},
		{name: "number before holder", modify: func(r *Request) { r.Card.Number = ""; r.Card.Holder = "" }, want: ErrCardNumberRequired},
		{name: "month 13", modify: func(r *Request) { r.Card.Expiry = "13/30" }, want: ErrCardExpiryInvalid},
		{name: "four digit year", modify: func(r *Request) { r.Card.Expiry = "12/2030" }, want: ErrCardExpiryInvalid},
		{name: "expired month", modify: func(r *Request) { r.Card.Expiry = "12/23" }, want: ErrCardExpiryInvalid},
		{name: "no token", modify: func(r *Request) { r.Session.Token = "" }, want: ErrUnauthorized},
		{name: "no user id", modify: func(r *Request) { r.Session.UserID = 0 }, want: ErrUserIDNotFound},
		{name: "no term", modify: func(r *Request) { r.Lease.LeaseTerm = 0 }, want: ErrInvalidLease},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{car: &domain.Car{ID: 3, Status: domain.CarStatusAvailable}}
			repo := &fakeRepo{}
			req := validRequest()
			tt.modify(req)

			_, err := newTestUseCase(client, repo, &fakeMetrics{}).Execute(context.Background(), req)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, client.calls)
			assert.Empty(t, repo.states)
		})
	}
}

func TestValidateExpiry(t *testing.T) {
	assert.NoError(t, validateExpiry("01/24", testNow))
	assert.NoError(t, validateExpiry("1/2", testNow))
	assert.ErrorIs(t, validateExpiry("00/25", testNow), ErrCardExpiryInvalid)
	assert.ErrorIs(t, validateExpiry("ab/cd", testNow), ErrCardExpiryInvalid)
	assert.ErrorIs(t, validateExpiry("12/2030", testNow), ErrCardExpiryInvalid)
}

func TestUseCase_ReservationStepFailures(t *testing.T) {
	tests := []struct {
		name      string
		client    *fakeClient
		want      error
		wantMsg   string
		wantCalls []string
	}{
		{
			name: "reservation rejected",
			client: &fakeClient{
				car:       &domain.Car{ID: 3, Status: domain.CarStatusAvailable},
				createErr: &leasingapi.APIError{StatusCode: 400, Message: "Автомобиль уже забронирован"},
				leaseID:   11,
			},
			want:      ErrReservationFailed,
			wantMsg:   "Автомобиль уже забронирован",
			wantCalls: []string{"GetCar", "CreateReservation"},
		},
		{
			name: "reservation list failed",
			client: &fakeClient{
				car:     &domain.Car{ID: 3, Status: domain.CarStatusReserved},
				resErr:  errors.New("unexpected EOF"),
				leaseID: 11,
			},
			want:      ErrReservationCheck,
			wantMsg:   MsgReservationCheck,
			wantCalls: []string{"GetCar", "ListReservations"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			m := &fakeMetrics{}

			_, err := newTestUseCase(tt.client, repo, m).Execute(context.Background(), validRequest())
			require.ErrorIs(t, err, tt.want)

			assert.Equal(t, tt.wantCalls, tt.client.calls)
			assert.Empty(t, tt.client.leases)
			assert.Empty(t, tt.client.payments)
			assert.Equal(t, tt.wantMsg, UserMessage(err))
			assert.Equal(t, domain.CheckoutFailed, repo.last.State)
			assert.Equal(t, domain.CheckoutCarChecked, *repo.last.FailedAt)
			assert.Equal(t, []string{"failed"}, m.states)
		})
	}
}

func TestUseCase_JournalFailureAfterLease(t *testing.T) {
	t.Run("completed not persisted", func(t *testing.T) {
		client := &fakeClient{car: &domain.Car{ID: 3, Status: domain.CarStatusAvailable}, leaseID: 11}
		repo := &fakeRepo{failOn: domain.CheckoutCompleted}
		m := &fakeMetrics{}

		resp, err := newTestUseCase(client, repo, m).Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Equal(t, []string{"GetCar", "CreateReservation", "CreateLease", "CreatePayment"}, client.calls)
		assert.True(t, resp.Checkout.IsCompleted())
		assert.Equal(t, domain.CheckoutLeaseCreated, repo.last.State)
		assert.Equal(t, int64(11), *repo.last.LeaseContractID)
		assert.Equal(t, []string{"completed"}, m.states)
	})

	t.Run("lease_created not persisted", func(t *testing.T) {
		client := &fakeClient{car: &domain.Car{ID: 3, Status: domain.CarStatusAvailable}, leaseID: 11}
		repo := &fakeRepo{failOn: domain.CheckoutLeaseCreated}
		m := &fakeMetrics{}

		resp, err := newTestUseCase(client, repo, m).Execute(context.Background(), validRequest())
		require.NoError(t, err)

		require.Len(t, client.payments, 1)
		assert.True(t, resp.Checkout.IsCompleted())
		assert.Equal(t, domain.CheckoutCompleted, repo.last.State)
		require.NotNil(t, repo.last.LeaseContractID)
		assert.Equal(t, int64(11), *repo.last.LeaseContractID)
		assert.Equal(t, []string{"completed"}, m.states)
	})

	t.Run("lease_created not persisted then payment failed", func(t *testing.T) {
		client := &fakeClient{
			car:     &domain.Car{ID: 3, Status: domain.CarStatusAvailable},
			leaseID: 11,
			payErr:  &leasingapi.APIError{StatusCode: 500},
		}
		repo := &fakeRepo{failOn: domain.CheckoutLeaseCreated}
		m := &fakeMetrics{}

		_, err := newTestUseCase(client, repo, m).Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrPaymentFailed)

		assert.Equal(t, domain.CheckoutPaymentFailed, repo.last.State)
		assert.True(t, repo.last.NeedsReconciliation())
		assert.Equal(t, int64(11), *repo.last.LeaseContractID)
		assert.Equal(t, domain.CheckoutLeaseCreated, *repo.last.FailedAt)
		assert.Equal(t, []string{"payment_failed"}, m.states)
	})
}
