package auth

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LeasingGateway/internal/api/handlers"
	"github.com/m04kA/SMC-LeasingGateway/internal/api/middleware"
	sessionService "github.com/m04kA/SMC-LeasingGateway/internal/service/session"
	"github.com/m04kA/SMC-LeasingGateway/internal/service/session/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptyCredentials   = "Введите email и пароль"
	msgMissingFields      = "Все поля обязательны"
	msgInvalidEmail       = "Некорректный email"
	msgInvalidPhone       = "Некорректный номер телефона"
	msgShortPassword      = "Пароль должен быть ≥ 6 символов"
	msgAgreementRequired  = "Необходимо согласиться с политикой"
	msgTokenMissing       = "Токен не предоставлен сервером"
	msgMalformedResponse  = "Некорректный ответ сервера"
	msgLoginFailed        = "Произошла ошибка при входе"
	msgRegisterFailed     = "Произошла ошибка при регистрации"
	msgUnauthorized       = "Требуется авторизация."
	msgLoggedOut          = "Вы вышли из аккаунта"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Login POST /api/v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.respondSessionError(w, "POST /auth/login", err, msgLoginFailed)
		return
	}

	h.logger.Info("POST /auth/login - Session opened: role=%s, user_id=%d", resp.Role, resp.UserID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Register POST /api/v1/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.respondSessionError(w, "POST /auth/register", err, msgRegisterFailed)
		return
	}

	h.logger.Info("POST /auth/register - User registered: user_id=%d", resp.UserID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Logout POST /api/v1/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Logout(r.Context(), sess.ID); err != nil {
		if errors.Is(err, sessionService.ErrSessionNotFound) {
			h.logger.Warn("POST /auth/logout - Session already closed")
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		h.logger.Error("POST /auth/logout - Failed to close session: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /auth/logout - Session closed: user_id=%d", sess.UserID)
	handlers.RespondMessage(w, http.StatusOK, msgLoggedOut)
}

// Me GET /api/v1/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.service.RefreshRole(r.Context(), sess))
}

func (h *Handler) respondSessionError(w http.ResponseWriter, route string, err error, fallback string) {
	switch {
	case errors.Is(err, sessionService.ErrEmptyCredentials):
		handlers.RespondBadRequest(w, msgEmptyCredentials)
	case errors.Is(err, sessionService.ErrMissingFields):
		handlers.RespondBadRequest(w, msgMissingFields)
	case errors.Is(err, sessionService.ErrInvalidEmail):
		handlers.RespondBadRequest(w, msgInvalidEmail)
	case errors.Is(err, sessionService.ErrInvalidPhone):
		handlers.RespondBadRequest(w, msgInvalidPhone)
	case errors.Is(err, sessionService.ErrShortPassword):
		handlers.RespondBadRequest(w, msgShortPassword)
	case errors.Is(err, sessionService.ErrAgreementRequired):
		handlers.RespondBadRequest(w, msgAgreementRequired)

	case errors.Is(err, sessionService.ErrTokenMissing):
		h.logger.Warn("%s - Backend returned no token", route)
		handlers.RespondError(w, http.StatusBadGateway, msgTokenMissing)

	case errors.Is(err, sessionService.ErrMalformedResponse):
		h.logger.Warn("%s - Malformed backend response: %v", route, err)
		handlers.RespondError(w, http.StatusBadGateway, msgMalformedResponse)

	case errors.Is(err, sessionService.ErrInternal):
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)

	default:
		h.logger.Warn("%s - Backend error: %v", route, err)
		handlers.RespondBackendError(w, err, fallback)
	}
}
