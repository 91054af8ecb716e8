package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-LeasingGateway/internal/api/handlers"
	"github.com/m04kA/SMC-LeasingGateway/internal/api/middleware"
	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	adminService "github.com/m04kA/SMC-LeasingGateway/internal/service/admin"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownResource    = "неизвестный раздел"
	msgInvalidID          = "некорректный ID записи"
	msgInvalidPage        = "некорректный номер страницы"
	msgInvalidDate        = "Некорректная дата"
	msgEmptyItem          = "Заполните поля формы"
	msgUnauthorized       = "Требуется авторизация."
	msgLoadFailed         = "Ошибка загрузки данных"
	msgSaveFailed         = "Ошибка сохранения"
	msgDeleteFailed       = "Ошибка удаления"
	msgExportFailed       = "Ошибка выгрузки данных"
	msgCreated            = "Запись добавлена"
	msgUpdated            = "Запись обновлена"
	msgDeleted            = "Запись удалена"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service AdminService
	logger  Logger
}

func NewHandler(service AdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/{resource}?page=1&q=...
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess, req, ok := h.listRequest(w, r, "GET /admin/{resource}")
	if !ok {
		return
	}

	resp, err := h.service.List(r.Context(), sess, req)
	if err != nil {
		h.logger.Warn("GET /admin/{resource} - Failed: resource=%s, error=%v", req.Resource, err)
		handlers.RespondBackendError(w, err, msgLoadFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Schema GET /api/v1/admin/{resource}/schema?editing=true
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	resource, ok := h.resource(w, r, "GET /admin/{resource}/schema")
	if !ok {
		return
	}

	editing, _ := strconv.ParseBool(r.URL.Query().Get("editing"))
	handlers.RespondJSON(w, http.StatusOK, h.service.Schema(resource, editing))
}

// Create POST /api/v1/admin/{resource}
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	resource, ok := h.resource(w, r, "POST /admin/{resource}")
	if !ok {
		return
	}

	var item domain.AdminItem
	if err := handlers.DecodeJSON(r, &item); err != nil {
		h.logger.Warn("POST /admin/{resource} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Create(r.Context(), sess, resource, item); err != nil {
		h.respondSaveError(w, "POST /admin/{resource}", resource, err)
		return
	}

	h.logger.Info("POST /admin/{resource} - Created: resource=%s", resource)
	handlers.RespondMessage(w, http.StatusCreated, msgCreated)
}

// Update PUT /api/v1/admin/{resource}/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	sess, resource, id, ok := h.itemTarget(w, r, "PUT /admin/{resource}/{id}")
	if !ok {
		return
	}

	var item domain.AdminItem
	if err := handlers.DecodeJSON(r, &item); err != nil {
		h.logger.Warn("PUT /admin/{resource}/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Update(r.Context(), sess, resource, id, item); err != nil {
		h.respondSaveError(w, "PUT /admin/{resource}/{id}", resource, err)
		return
	}

	h.logger.Info("PUT /admin/{resource}/{id} - Updated: resource=%s, id=%d", resource, id)
	handlers.RespondMessage(w, http.StatusOK, msgUpdated)
}

// Delete DELETE /api/v1/admin/{resource}/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, resource, id, ok := h.itemTarget(w, r, "DELETE /admin/{resource}/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), sess, resource, id); err != nil {
		h.logger.Warn("DELETE /admin/{resource}/{id} - Failed: resource=%s, id=%d, error=%v", resource, id, err)
		handlers.RespondBackendError(w, err, msgDeleteFailed)
		return
	}

	h.logger.Info("DELETE /admin/{resource}/{id} - Deleted: resource=%s, id=%d", resource, id)
	handlers.RespondMessage(w, http.StatusOK, msgDeleted)
}

// Pickers GET /api/v1/admin/pickers
func (h *Handler) Pickers(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.service.Pickers(r.Context(), sess))
}

// Export GET /api/v1/admin/{resource}/export?page=1&q=...
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	sess, req, ok := h.listRequest(w, r, "GET /admin/{resource}/export")
	if !ok {
		return
	}

	resp, err := h.service.Export(r.Context(), sess, req)
	if err != nil {
		if errors.Is(err, adminService.ErrExport) {
			h.logger.Error("GET /admin/{resource}/export - Export failed: resource=%s, error=%v", req.Resource, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgExportFailed)
			return
		}
		h.logger.Warn("GET /admin/{resource}/export - Failed: resource=%s, error=%v", req.Resource, err)
		handlers.RespondBackendError(w, err, msgLoadFailed)
		return
	}

	h.logger.Info("GET /admin/{resource}/export - Exported: resource=%s, size=%d", req.Resource, len(resp.Content))
	handlers.RespondFile(w, contentTypeXLSX, resp.FileName, resp.Content)
}

func (h *Handler) respondSaveError(w http.ResponseWriter, route string, resource domain.AdminResource, err error) {
	switch {
	case errors.Is(err, adminService.ErrInvalidDate):
		h.logger.Warn("%s - Invalid date: resource=%s, error=%v", route, resource, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
	case errors.Is(err, adminService.ErrEmptyItem):
		handlers.RespondBadRequest(w, msgEmptyItem)
	case errors.Is(err, adminService.ErrInvalidID):
		handlers.RespondBadRequest(w, msgInvalidID)
	default:
		h.logger.Warn("%s - Failed: resource=%s, error=%v", route, resource, err)
		handlers.RespondBackendError(w, err, msgSaveFailed)
	}
}
