package admin

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LeasingGateway/internal/api/handlers"
	"github.com/m04kA/SMC-LeasingGateway/internal/api/middleware"
	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
	"github.com/m04kA/SMC-LeasingGateway/internal/service/admin/models"
)

func (h *Handler) resource(w http.ResponseWriter, r *http.Request, route string) (domain.AdminResource, bool) {
	resource, err := domain.ParseAdminResource(mux.Vars(r)["resource"])
	if err != nil {
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondNotFound(w, msgUnknownResource)
		return "", false
	}
	return resource, true
}

// listRequest собирает параметры списка; при ошибке ответ уже записан
func (h *Handler) listRequest(w http.ResponseWriter, r *http.Request, route string) (*domain.Session, *models.ListRequest, bool) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return nil, nil, false
	}

	resource, ok := h.resource(w, r, route)
	if !ok {
		return nil, nil, false
	}

	page := domain.FirstPage
	if raw := r.URL.Query().Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("%s - Invalid page: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidPage)
			return nil, nil, false
		}
		page = p
	}

	return sess, &models.ListRequest{
		Resource: resource,
		Page:     page,
		Query:    r.URL.Query().Get("q"),
	}, true
}

func (h *Handler) itemTarget(w http.ResponseWriter, r *http.Request, route string) (*domain.Session, domain.AdminResource, int64, bool) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return nil, "", 0, false
	}

	resource, ok := h.resource(w, r, route)
	if !ok {
		return nil, "", 0, false
	}

	id, err := handlers.PathInt64(mux.Vars(r), "id")
	if err != nil {
		h.logger.Warn("%s - Invalid ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return nil, "", 0, false
	}

	return sess, resource, id, true
}
