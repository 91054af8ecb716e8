package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/pkg/psqlbuilder"
)

// columns порядок колонок должен совпадать со scanCheckout
var columns = []string{
	"id",
	"user_id",
	"car_id",
	"state",
	"failed_at",
	"car_brand",
	"car_model",
	"lease_term",
	"monthly_payment",
	"down_payment",
	"reservation_id",
	"reservation_reused",
	"lease_contract_id",
	"lease_start_date",
	"lease_end_date",
	"paid_at",
	"error_message",
	"created_at",
	"updated_at",
}

// Repository журнал оформлений лизинга
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала оформлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись журнала в начальном состоянии
func (r *Repository) Create(ctx context.Context, c *domain.Checkout) (*domain.Checkout, error) {
	query, args, err := psqlbuilder.Insert("checkouts").
		Columns(
			"user_id",
			"car_id",
			"state",
			"car_brand",
			"car_model",
			"lease_term",
			"monthly_payment",
			"down_payment",
		).
		Values(
			c.UserID,
			c.CarID,
			c.State,
			c.CarBrand,
			c.CarModel,
			c.LeaseTerm,
			c.MonthlyPayment,
			c.DownPayment,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID возвращает запись журнала по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Checkout, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From("checkouts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCheckout(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCheckoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan checkout: %v", ErrScanRow, err)
	}

	return c, nil
}

// ListByUser возвращает оформления пользователя, новые первыми
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Checkout, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From("checkouts").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	checkouts := make([]*domain.Checkout, 0)
	for rows.Next() {
		c, err := scanCheckout(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan checkout: %v", ErrScanRow, err)
		}
		checkouts = append(checkouts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - iterate rows: %v", ErrScanRow, err)
	}

	return checkouts, nil
}

// Transition сохраняет новое состояние записи, если она все еще в состоянии from
// Переход выполняется одним условным UPDATE, параллельный переход получает ErrStateConflict
func (r *Repository) Transition(ctx context.Context, c *domain.Checkout, from domain.CheckoutState) error {
	query, args, err := psqlbuilder.Update("checkouts").
		Set("state", c.State).
		Set("failed_at", c.FailedAt).
		Set("reservation_id", c.ReservationID).
		Set("reservation_reused", c.ReservationReused).
		Set("lease_contract_id", c.LeaseContractID).
		Set("lease_start_date", c.LeaseStartDate).
		Set("lease_end_date", c.LeaseEndDate).
		Set("paid_at", c.PaidAt).
		Set("error_message", c.ErrorMessage).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID, "state": from}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Transition - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: checkout %d is no longer %s", ErrStateConflict, c.ID, from)
	}
	if err != nil {
		return fmt.Errorf("%w: Transition - execute update: %v", ErrExecQuery, err)
	}

	c.UpdatedAt = updatedAt.Time
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCheckout(row rowScanner) (*domain.Checkout, error) {
	var c domain.Checkout
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.CarID,
		&c.State,
		&c.FailedAt,
		&c.CarBrand,
		&c.CarModel,
		&c.LeaseTerm,
		&c.MonthlyPayment,
		&c.DownPayment,
		&c.ReservationID,
		&c.ReservationReused,
		&c.LeaseContractID,
		&c.LeaseStartDate,
		&c.LeaseEndDate,
		&c.PaidAt,
		&c.ErrorMessage,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
