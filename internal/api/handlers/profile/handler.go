package profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LeasingGateway/internal/api/handlers"
	"github.com/m04kA/SMC-LeasingGateway/internal/api/middleware"
	profileService "github.com/m04kA/SMC-LeasingGateway/internal/service/profile"
	"github.com/m04kA/SMC-LeasingGateway/internal/service/profile/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "Требуется авторизация."
	msgLoadFailed         = "Не удалось загрузить профиль."
	msgMissingFields      = "Все поля обязательны"
	msgUpdated            = "Профиль обновлён"
	msgUpdateFailed       = "Не удалось обновить профиль."
	msgAnalyticsFailed    = "Ошибка загрузки данных"
)

type Handler struct {
	service ProfileService
	logger  Logger
}

func NewHandler(service ProfileService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/profile
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	resp, err := h.service.GetProfile(r.Context(), sess)
	if err != nil {
		h.logger.Warn("GET /profile - Failed: user_id=%d, error=%v", sess.UserID, err)
		handlers.RespondBackendError(w, err, msgLoadFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Update PUT /api/v1/profile
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /profile - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateProfile(r.Context(), sess, &req); err != nil {
		if errors.Is(err, profileService.ErrMissingFields) {
			h.logger.Warn("PUT /profile - Validation error: %v", err)
			handlers.RespondBadRequest(w, msgMissingFields)
			return
		}
		h.logger.Warn("PUT /profile - Failed: user_id=%d, error=%v", sess.UserID, err)
		handlers.RespondBackendError(w, err, msgUpdateFailed)
		return
	}

	h.logger.Info("PUT /profile - Profile updated: user_id=%d", sess.UserID)
	handlers.RespondMessage(w, http.StatusOK, msgUpdated)
}

// Analytics GET /api/v1/profile/analytics
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	resp, err := h.service.GetAnalytics(r.Context(), sess)
	if err != nil {
		h.logger.Warn("GET /profile/analytics - Failed: user_id=%d, error=%v", sess.UserID, err)
		handlers.RespondBackendError(w, err, msgAnalyticsFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
