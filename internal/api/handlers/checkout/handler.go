package checkout

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LeasingGateway/internal/api/handlers"
	"github.com/m04kA/SMC-LeasingGateway/internal/api/middleware"
	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	checkoutsService "github.com/m04kA/SMC-LeasingGateway/internal/service/checkouts"
	checkoutUC "github.com/m04kA/SMC-LeasingGateway/internal/usecase/checkout"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCheckoutID  = "некорректный ID оформления"
	msgUnauthorized       = "Требуется авторизация."
	msgCheckoutCompleted  = "Лизинг успешно оформлен!"
	msgCheckoutNotFound   = "оформление не найдено"
	msgNotCompleted       = "квитанция доступна только для завершенного оформления"
)

const contentTypePDF = "application/pdf"

// badRequestErrors ошибки локальной проверки формы
var badRequestErrors = []error{
	checkoutUC.ErrCardNumberRequired,
	checkoutUC.ErrCardHolderRequired,
	checkoutUC.ErrCardExpiryRequired,
	checkoutUC.ErrCardExpiryInvalid,
	checkoutUC.ErrCVVRequired,
	checkoutUC.ErrAgreementRequired,
	checkoutUC.ErrInvalidLease,
}

type Handler struct {
	useCase CheckoutUseCase
	service CheckoutService
	logger  Logger
}

func NewHandler(useCase CheckoutUseCase, service CheckoutService, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/checkouts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateCheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /checkouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(sess))
	if err != nil {
		status := checkoutStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("POST /checkouts - Checkout failed: car_id=%d, user_id=%d, error=%v", req.Lease.CarID, sess.UserID, err)
		} else {
			h.logger.Warn("POST /checkouts - Checkout rejected: car_id=%d, user_id=%d, error=%v", req.Lease.CarID, sess.UserID, err)
		}
		handlers.RespondError(w, status, checkoutUC.UserMessage(err))
		return
	}

	h.logger.Info("POST /checkouts - Checkout completed: checkout_id=%d, lease_contract_id=%d", resp.Checkout.ID, derefID(resp.Checkout.LeaseContractID))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}

// List GET /api/v1/checkouts
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	list, err := h.service.List(r.Context(), sess)
	if err != nil {
		h.logger.Error("GET /checkouts - Failed to list checkouts: user_id=%d, error=%v", sess.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Get GET /api/v1/checkouts/{checkoutId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := h.sessionAndID(w, r, "GET /checkouts/{id}")
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), sess, id)
	if err != nil {
		h.respondServiceError(w, "GET /checkouts/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Receipt GET /api/v1/checkouts/{checkoutId}/receipt
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := h.sessionAndID(w, r, "GET /checkouts/{id}/receipt")
	if !ok {
		return
	}

	receipt, err := h.service.Receipt(r.Context(), sess, id)
	if err != nil {
		h.respondServiceError(w, "GET /checkouts/{id}/receipt", id, err)
		return
	}

	h.logger.Info("GET /checkouts/{id}/receipt - Receipt generated: checkout_id=%d, size=%d", id, len(receipt.Content))
	handlers.RespondFile(w, contentTypePDF, receipt.FileName, receipt.Content)
}

func (h *Handler) sessionAndID(w http.ResponseWriter, r *http.Request, route string) (*domain.Session, int64, bool) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return nil, 0, false
	}

	id, err := handlers.PathInt64(mux.Vars(r), "checkoutId")
	if err != nil {
		h.logger.Warn("%s - Invalid checkout ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidCheckoutID)
		return nil, 0, false
	}

	return sess, id, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, checkoutsService.ErrCheckoutNotFound):
		h.logger.Warn("%s - Checkout not found: checkout_id=%d", route, id)
		handlers.RespondNotFound(w, msgCheckoutNotFound)
	case errors.Is(err, checkoutsService.ErrNotCompleted):
		h.logger.Warn("%s - Checkout not completed: checkout_id=%d", route, id)
		handlers.RespondConflict(w, msgNotCompleted)
	default:
		h.logger.Error("%s - Internal error: checkout_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}

// checkoutStatus HTTP статус для ошибки оформления
func checkoutStatus(err error) int {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	switch {
	case errors.Is(err, checkoutUC.ErrUnauthorized), errors.Is(err, checkoutUC.ErrUserIDNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, checkoutUC.ErrCarUnavailable), errors.Is(err, checkoutUC.ErrReservedByAnotherUser):
		return http.StatusConflict
	case errors.Is(err, checkoutUC.ErrJournal):
		return http.StatusInternalServerError
	case errors.Is(err, checkoutUC.ErrLeaseIDMissing):
		return http.StatusBadGateway
	default:
		return handlers.BackendStatus(err)
	}
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
