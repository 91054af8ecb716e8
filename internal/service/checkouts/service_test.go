package checkouts

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	checkoutRepo "github.com/m04kA/SMC-LeasingGateway/internal/infra/storage/checkout"
	"github.com/m04kA/SMC-LeasingGateway/internal/pdf"
	"github.com/m04kA/SMC-LeasingGateway/pkg/logger"
	"github.com/m04kA/SMC-LeasingGateway/pkg/ptr"
)

type fakeRepo struct {
	items map[int64]*domain.Checkout
	err   error
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Checkout, error) {
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.items[id]
	if !ok {
		return nil, checkoutRepo.ErrCheckoutNotFound
	}
	return c, nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Checkout, error) {
	if r.err != nil {
		return nil, r.err
	}
	result := make([]*domain.Checkout, 0)
	for _, c := range r.items {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

var userSession = &domain.Session{ID: "sid", Token: "tok", UserID: 7}

func newTestService(t *testing.T, repo *fakeRepo) *Service {
	gen, err := pdf.NewGenerator("")
	require.NoError(t, err)
	return NewService(repo, gen, logger.NewNop())
}

func testRepo() *fakeRepo {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	return &fakeRepo{items: map[int64]*domain.Checkout{
		1: {ID: 1, UserID: 7, State: domain.CheckoutCompleted, CarBrand: "BMW", LeaseTerm: 12,
			LeaseContractID: ptr.Ptr(int64(11)), LeaseStartDate: &start, PaidAt: &start},
		2: {ID: 2, UserID: 7, State: domain.CheckoutPaymentFailed, FailedAt: ptr.Ptr(domain.CheckoutLeaseCreated),
			LeaseContractID: ptr.Ptr(int64(12))},
		3: {ID: 3, UserID: 8, State: domain.CheckoutCompleted},
	}}
}

func TestService_Get(t *testing.T) {
	svc := newTestService(t, testRepo())

	resp, err := svc.Get(context.Background(), userSession, 2)
	require.NoError(t, err)
	assert.Equal(t, "payment_failed", resp.State)
	assert.True(t, resp.NeedsReconciliation)
	require.NotNil(t, resp.FailedAt)
	assert.Equal(t, "lease_created", *resp.FailedAt)

	_, err = svc.Get(context.Background(), userSession, 3)
	assert.ErrorIs(t, err, ErrCheckoutNotFound)

	_, err = svc.Get(context.Background(), userSession, 99)
	assert.ErrorIs(t, err, ErrCheckoutNotFound)
}

func TestService_GetRepoError(t *testing.T) {
	svc := newTestService(t, &fakeRepo{err: errors.New("db down")})

	_, err := svc.Get(context.Background(), userSession, 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_List(t *testing.T) {
	list, err := newTestService(t, testRepo()).List(context.Background(), userSession)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestService_Receipt(t *testing.T) {
	svc := newTestService(t, testRepo())

	resp, err := svc.Receipt(context.Background(), userSession, 1)
	require.NoError(t, err)
	assert.Equal(t, "checkout-1.pdf", resp.FileName)
	assert.True(t, bytes.HasPrefix(resp.Content, []byte("%PDF")))

	_, err = svc.Receipt(context.Background(), userSession, 2)
	assert.ErrorIs(t, err, ErrNotCompleted)

	_, err = svc.Receipt(context.Background(), userSession, 3)
	assert.ErrorIs(t, err, ErrCheckoutNotFound)
}
