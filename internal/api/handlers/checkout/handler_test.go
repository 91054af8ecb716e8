package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LeasingGateway/internal/api/handlers"
	"github.com/m04kA/SMC-LeasingGateway/internal/api/middleware"
	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/integrations/leasingapi"
	checkoutsService "github.com/m04kA/SMC-LeasingGateway/internal/service/checkouts"
	checkoutsModels "github.com/m04kA/SMC-LeasingGateway/internal/service/checkouts/models"
	checkoutUC "github.com/m04kA/SMC-LeasingGateway/internal/usecase/checkout"
	"github.com/m04kA/SMC-LeasingGateway/pkg/logger"
)

type fakeUseCase struct {
	got  *checkoutUC.Request
	resp *checkoutUC.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *checkoutUC.Request) (*checkoutUC.Response, error) {
	f.got = req
	return f.resp, f.err
}

type fakeService struct {
	receipt *checkoutsModels.ReceiptResponse
	err     error
}

func (f *fakeService) Get(context.Context, *domain.Session, int64) (*checkoutsModels.CheckoutResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &checkoutsModels.CheckoutResponse{ID: 1, State: string(domain.CheckoutCompleted)}, nil
}

func (f *fakeService) List(context.Context, *domain.Session) ([]*checkoutsModels.CheckoutResponse, error) {
	return nil, f.err
}

func (f *fakeService) Receipt(context.Context, *domain.Session, int64) (*checkoutsModels.ReceiptResponse, error) {
	return f.receipt, f.err
}

var testSession = &domain.Session{ID: "s1", Token: "token", UserID: 7, Role: domain.RoleUser}

func postCheckout(t *testing.T, h *Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkouts", bytes.NewReader(raw))
	req = req.WithContext(middleware.WithSession(req.Context(), testSession))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandler_Create_Success(t *testing.T) {
	leaseID := int64(55)
	uc := &fakeUseCase{resp: &checkoutUC.Response{
		Checkout: &domain.Checkout{
			ID:              10,
			UserID:          7,
			CarID:           3,
			State:           domain.CheckoutCompleted,
			LeaseContractID: &leaseID,
			CreatedAt:       time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			UpdatedAt:       time.Date(2024, 1, 15, 10, 0, 1, 0, time.UTC),
		},
		RedirectAfter: 3 * time.Second,
	}}
	h := NewHandler(uc, &fakeService{}, logger.NewNop())

	rec := postCheckout(t, h, CreateCheckoutRequest{
		Lease:  domain.LeaseDetails{CarID: 3, LeaseTerm: 36, DownPayment: 500000},
		Card:   CardRequest{Number: "4111 1111 1111 1111", Holder: "IVAN IVANOV", Expiry: "12/30", CVV: "123"},
		Agreed: true,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var body CreateCheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(3000), body.RedirectAfterMs)
	assert.Equal(t, int64(10), body.Checkout.ID)
	assert.Equal(t, msgCheckoutCompleted, body.Message)

	require.NotNil(t, uc.got)
	assert.Same(t, testSession, uc.got.Session)
	assert.Equal(t, "IVAN IVANOV", uc.got.Card.Holder)
	assert.True(t, uc.got.Agreed)
}

func TestHandler_Create_InvalidBody(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, &fakeService{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkouts", bytes.NewBufferString("{"))
	req = req.WithContext(middleware.WithSession(req.Context(), testSession))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"card number", checkoutUC.ErrCardNumberRequired, http.StatusBadRequest, checkoutUC.MsgCardNumberRequired},
		{"agreement", checkoutUC.ErrAgreementRequired, http.StatusBadRequest, checkoutUC.MsgAgreementRequired},
		{"no token", checkoutUC.ErrUnauthorized, http.StatusUnauthorized, checkoutUC.MsgUnauthorized},
		{"car unavailable", checkoutUC.ErrCarUnavailable, http.StatusConflict, checkoutUC.MsgCarUnavailable},
		{"reserved by another", checkoutUC.ErrReservedByAnotherUser, http.StatusConflict, checkoutUC.MsgReservedByAnotherUser},
		{"journal", fmt.Errorf("%w: boom", checkoutUC.ErrJournal), http.StatusInternalServerError, checkoutUC.MsgCheckoutFailed},
		{"lease id missing", checkoutUC.ErrLeaseIDMissing, http.StatusBadGateway, checkoutUC.MsgLeaseIDMissing},
		{
			name:       "backend rejected lease",
			err:        fmt.Errorf("%w: %w", checkoutUC.ErrLeaseFailed, &leasingapi.APIError{StatusCode: http.StatusBadRequest, Message: "Лимит договоров исчерпан"}),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Лимит договоров исчерпан",
		},
		{
			name:       "backend unavailable",
			err:        fmt.Errorf("%w: %w", checkoutUC.ErrCarLoad, leasingapi.ErrUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    leasingapi.MsgUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, &fakeService{}, logger.NewNop())

			rec := postCheckout(t, h, CreateCheckoutRequest{Lease: domain.LeaseDetails{CarID: 3}})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, rec).Message)
		})
	}
}

func TestHandler_Receipt(t *testing.T) {
	svc := &fakeService{receipt: &checkoutsModels.ReceiptResponse{
		FileName: checkoutsModels.ReceiptFileName(10),
		Content:  []byte("%PDF-1.3"),
	}}
	h := NewHandler(&fakeUseCase{}, svc, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checkouts/10/receipt", nil)
	req = mux.SetURLVars(req, map[string]string{"checkoutId": "10"})
	req = req.WithContext(middleware.WithSession(req.Context(), testSession))
	rec := httptest.NewRecorder()
	h.Receipt(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypePDF, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "checkout-10.pdf")
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}

func TestHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{"invalid id", "abc", nil, http.StatusBadRequest},
		{"not found", "10", checkoutsService.ErrCheckoutNotFound, http.StatusNotFound},
		{"not completed", "10", checkoutsService.ErrNotCompleted, http.StatusConflict},
		{"internal", "10", checkoutsService.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{}, &fakeService{err: tt.err}, logger.NewNop())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/checkouts/"+tt.id+"/receipt", nil)
			req = mux.SetURLVars(req, map[string]string{"checkoutId": tt.id})
			req = req.WithContext(middleware.WithSession(req.Context(), testSession))
			rec := httptest.NewRecorder()
			h.Receipt(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_Get(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, &fakeService{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checkouts/1", nil)
	req = mux.SetURLVars(req, map[string]string{"checkoutId": "1"})
	req = req.WithContext(middleware.WithSession(req.Context(), testSession))
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body checkoutsModels.CheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(domain.CheckoutCompleted), body.State)
}
