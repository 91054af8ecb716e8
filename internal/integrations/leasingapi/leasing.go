package leasingapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// ListReservations возвращает брони автомобиля
func (c *Client) ListReservations(ctx context.Context, token string, carID int64) ([]domain.Reservation, error) {
	list := make([]reservationDTO, 0)
	err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/api/reservations",
		endpoint: "reservations.list",
		query:    url.Values{"carId": {strconv.FormatInt(carID, 10)}},
		token:    token,
	}, &list)
	if err != nil {
		return nil, err
	}
	return reservationsToDomain(list), nil
}

// CreateReservation создает бронь автомобиля на окно [start, end]
// Возвращает ID брони, если бэкенд его прислал, иначе 0
func (c *Client) CreateReservation(ctx context.Context, token string, carID int64, start, end time.Time) (int64, error) {
	var resp reservationDTO
	err := c.do(ctx, call{
		method:     http.MethodPost,
		path:       "/api/reservations",
		endpoint:   "reservations.create",
		token:      token,
		allowEmpty: true,
		body: reservationRequest{
			CarID:            carID,
			ReservationStart: formatTime(start),
			ReservationEnd:   formatTime(end),
		},
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// CreateLease создает договор лизинга и возвращает его ID
// ID равен 0, если бэкенд не вернул его в ответе
func (c *Client) CreateLease(ctx context.Context, token string, req LeaseRequest) (int64, error) {
	var resp leaseResponse
	err := c.do(ctx, call{
		method:     http.MethodPost,
		path:       "/api/lease",
		endpoint:   "lease.create",
		token:      token,
		allowEmpty: true,
		body: leaseRequestDTO{
			UserID:         req.UserID,
			CarID:          req.CarID,
			LeaseStartDate: formatTime(req.LeaseStartDate),
			LeaseEndDate:   formatTime(req.LeaseEndDate),
		},
	}, &resp)
	if err != nil {
		return 0, err
	}
	if resp.ID == nil {
		return 0, nil
	}
	return *resp.ID, nil
}

// CreatePayment регистрирует платеж по договору
func (c *Client) CreatePayment(ctx context.Context, token string, payment domain.Payment) error {
	return c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/api/payments",
		endpoint: "payments.create",
		token:    token,
		body: paymentDTO{
			ID:          payment.ID,
			PaymentDate: formatTime(payment.PaymentDate),
			Amount:      payment.Amount,
			IsPaid:      payment.IsPaid,
		},
	}, nil)
}
