package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO checkouts`).
		WithArgs(int64(5), int64(7), "started", "Kia", "K5", int64(36), 100.5, 2000.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))

	c, err := repo.Create(context.Background(), &domain.Checkout{
		UserID:         5,
		CarID:          7,
		State:          domain.CheckoutStarted,
		CarBrand:       "Kia",
		CarModel:       "K5",
		LeaseTerm:      36,
		MonthlyPayment: 100.5,
		DownPayment:    2000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(columns).AddRow(
		int64(11), int64(5), int64(7), "payment_failed", "lease_created",
		"Kia", "K5", 36, "100.50", "2000.00",
		int64(3), false, int64(42), now, now.AddDate(3, 0, 0),
		nil, "card declined", now, now,
	)
	mock.ExpectQuery(`SELECT .* FROM checkouts WHERE id = \$1`).WithArgs(int64(11)).WillReturnRows(rows)

	c, err := repo.GetByID(context.Background(), 11)
	require.NoError(t, err)

	assert.Equal(t, domain.CheckoutPaymentFailed, c.State)
	require.NotNil(t, c.FailedAt)
	assert.Equal(t, domain.CheckoutLeaseCreated, *c.FailedAt)
	require.NotNil(t, c.LeaseContractID)
	assert.Equal(t, int64(42), *c.LeaseContractID)
	assert.Nil(t, c.PaidAt)
	assert.Equal(t, 100.5, c.MonthlyPayment)
	assert.True(t, c.NeedsReconciliation())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .* FROM checkouts`).WithArgs(int64(1)).WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCheckoutNotFound)
}

func TestRepository_Transition(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE checkouts SET state = \$1, .* WHERE id = \$10 AND state = \$11 RETURNING updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectQuery(`UPDATE checkouts`).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	c := &domain.Checkout{ID: 11, State: domain.CheckoutCarChecked}

	require.NoError(t, repo.Transition(context.Background(), c, domain.CheckoutStarted))
	assert.Equal(t, now, c.UpdatedAt)

	err := repo.Transition(context.Background(), c, domain.CheckoutStarted)
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(columns).
		AddRow(int64(2), int64(5), int64(7), "completed", nil, "Kia", "K5", 12, 10.0, 20.0,
			nil, true, int64(1), now, now, now, nil, now, now).
		AddRow(int64(1), int64(5), int64(8), "failed", "started", "BMW", "X5", 24, 10.0, 20.0,
			nil, false, nil, nil, nil, nil, "Автомобиль недоступен для бронирования.", now, now)
	mock.ExpectQuery(`SELECT .* FROM checkouts WHERE user_id = \$1 ORDER BY created_at DESC, id DESC`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	list, err := repo.ListByUser(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].IsCompleted())
	assert.True(t, list[0].ReservationReused)
	require.NotNil(t, list[1].ErrorMessage)
	assert.Equal(t, "Автомобиль недоступен для бронирования.", *list[1].ErrorMessage)
}
