package catalog

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LeasingGateway/internal/api/handlers"
	"github.com/m04kA/SMC-LeasingGateway/internal/api/middleware"
	catalogService "github.com/m04kA/SMC-LeasingGateway/internal/service/catalog"
	"github.com/m04kA/SMC-LeasingGateway/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCarID       = "Некорректный carId"
	msgUnauthorized       = "Требуется авторизация."
	msgInvalidFilter      = "Неизвестное значение фильтра"
	msgSearchFailed       = "Не удалось загрузить список автомобилей."
	msgCarLoadFailed      = "Ошибка загрузки данных автомобиля."
	msgReviewsFailed      = "Ошибка загрузки отзывов"
	msgEmptyComment       = "Пожалуйста, напишите отзыв."
	msgInvalidRating      = "Оценка должна быть от 1 до 5"
	msgReviewCreated      = "Отзыв успешно добавлен!"
	msgReviewFailed       = "Не удалось отправить отзыв."
	msgFavoritesFailed    = "Не удалось загрузить избранное."
	msgFavoriteAdded      = "Автомобиль добавлен в избранное"
	msgFavoriteRemoved    = "Автомобиль удалён из избранного"
	msgOperationFailed    = "Не удалось выполнить операцию."
	msgReserved           = "Автомобиль забронирован"
	msgReserveFailed      = "Ошибка бронирования"
	msgReservationsFailed = "Не удалось загрузить бронирования"
	msgInvalidQuoteParams = "некорректные параметры калькулятора"
	msgInvalidQuote       = "Взнос от 10 до 50%, срок от 12 до 60 месяцев"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Search GET /api/v1/cars
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	resp, err := h.service.Search(r.Context(), sess, filterFromQuery(r.URL.Query()))
	if err != nil {
		if errors.Is(err, catalogService.ErrInvalidFilter) {
			h.logger.Warn("GET /cars - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Warn("GET /cars - Search failed: %v", err)
		handlers.RespondBackendError(w, err, msgSearchFailed)
		return
	}

	h.logger.Info("GET /cars - Found %d cars", len(resp.Cars))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// GetCar GET /api/v1/cars/{carId}
func (h *Handler) GetCar(w http.ResponseWriter, r *http.Request) {
	sess, carID, ok := h.sessionAndCar(w, r, "GET /cars/{id}")
	if !ok {
		return
	}

	resp, err := h.service.GetCar(r.Context(), sess, carID)
	if err != nil {
		h.logger.Warn("GET /cars/{id} - Failed to load car_id=%d: %v", carID, err)
		handlers.RespondBackendError(w, err, msgCarLoadFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// LeaseQuote GET /api/v1/cars/{carId}/lease-quote?downPercent=20&term=36
func (h *Handler) LeaseQuote(w http.ResponseWriter, r *http.Request) {
	sess, carID, ok := h.sessionAndCar(w, r, "GET /cars/{id}/lease-quote")
	if !ok {
		return
	}

	downPercent, term, err := quoteParams(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /cars/{id}/lease-quote - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuoteParams)
		return
	}

	quote, err := h.service.LeaseQuote(r.Context(), sess, carID, downPercent, term)
	if err != nil {
		if errors.Is(err, catalogService.ErrInvalidQuote) {
			handlers.RespondBadRequest(w, msgInvalidQuote)
			return
		}
		h.logger.Warn("GET /cars/{id}/lease-quote - Failed for car_id=%d: %v", carID, err)
		handlers.RespondBackendError(w, err, msgCarLoadFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, quote)
}

// GetReviews GET /api/v1/cars/{carId}/reviews
func (h *Handler) GetReviews(w http.ResponseWriter, r *http.Request) {
	carID, err := handlers.PathInt64(mux.Vars(r), "carId")
	if err != nil {
		h.logger.Warn("GET /cars/{id}/reviews - Invalid car ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	reviews, err := h.service.GetReviews(r.Context(), carID)
	if err != nil {
		h.logger.Warn("GET /cars/{id}/reviews - Failed for car_id=%d: %v", carID, err)
		handlers.RespondBackendError(w, err, msgReviewsFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, reviews)
}

// CreateReview POST /api/v1/cars/{carId}/reviews
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	sess, carID, ok := h.sessionAndCar(w, r, "POST /cars/{id}/reviews")
	if !ok {
		return
	}

	var req models.CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cars/{id}/reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.CreateReview(r.Context(), sess, carID, &req); err != nil {
		switch {
		case errors.Is(err, catalogService.ErrEmptyComment):
			handlers.RespondBadRequest(w, msgEmptyComment)
		case errors.Is(err, catalogService.ErrInvalidRating):
			handlers.RespondBadRequest(w, msgInvalidRating)
		default:
			h.logger.Warn("POST /cars/{id}/reviews - Failed for car_id=%d: %v", carID, err)
			handlers.RespondBackendError(w, err, msgReviewFailed)
		}
		return
	}

	h.logger.Info("POST /cars/{id}/reviews - Review created: car_id=%d, user_id=%d", carID, sess.UserID)
	handlers.RespondMessage(w, http.StatusCreated, msgReviewCreated)
}

// ListFavorites GET /api/v1/favorites
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	cars, err := h.service.ListFavorites(r.Context(), sess)
	if err != nil {
		h.logger.Warn("GET /favorites - Failed: %v", err)
		handlers.RespondBackendError(w, err, msgFavoritesFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cars)
}

// AddFavorite POST /api/v1/favorites/{carId}
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	sess, carID, ok := h.sessionAndCar(w, r, "POST /favorites/{id}")
	if !ok {
		return
	}

	if err := h.service.AddFavorite(r.Context(), sess, carID); err != nil {
		h.logger.Warn("POST /favorites/{id} - Failed for car_id=%d: %v", carID, err)
		handlers.RespondBackendError(w, err, msgOperationFailed)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, msgFavoriteAdded)
}

// RemoveFavorite DELETE /api/v1/favorites/{carId}
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	sess, carID, ok := h.sessionAndCar(w, r, "DELETE /favorites/{id}")
	if !ok {
		return
	}

	if err := h.service.RemoveFavorite(r.Context(), sess, carID); err != nil {
		h.logger.Warn("DELETE /favorites/{id} - Failed for car_id=%d: %v", carID, err)
		handlers.RespondBackendError(w, err, msgOperationFailed)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, msgFavoriteRemoved)
}

// ToggleFavorite POST /api/v1/favorites/{carId}/toggle
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	sess, carID, ok := h.sessionAndCar(w, r, "POST /favorites/{id}/toggle")
	if !ok {
		return
	}

	resp, err := h.service.ToggleFavorite(r.Context(), sess, carID)
	if err != nil {
		h.logger.Warn("POST /favorites/{id}/toggle - Failed for car_id=%d: %v", carID, err)
		handlers.RespondBackendError(w, err, msgOperationFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Reserve POST /api/v1/cars/{carId}/reserve
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	sess, carID, ok := h.sessionAndCar(w, r, "POST /cars/{id}/reserve")
	if !ok {
		return
	}

	if err := h.service.QuickReserve(r.Context(), sess, carID); err != nil {
		h.logger.Warn("POST /cars/{id}/reserve - Failed for car_id=%d: %v", carID, err)
		handlers.RespondBackendError(w, err, msgReserveFailed)
		return
	}

	h.logger.Info("POST /cars/{id}/reserve - Car reserved: car_id=%d, user_id=%d", carID, sess.UserID)
	handlers.RespondMessage(w, http.StatusOK, msgReserved)
}

// MyReservations GET /api/v1/reservations
func (h *Handler) MyReservations(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	list, err := h.service.MyReservations(r.Context(), sess)
	if err != nil {
		h.logger.Warn("GET /reservations - Failed: %v", err)
		handlers.RespondBackendError(w, err, msgReservationsFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
