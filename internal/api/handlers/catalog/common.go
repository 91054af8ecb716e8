package catalog

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LeasingGateway/internal/api/handlers"
	"github.com/m04kA/SMC-LeasingGateway/internal/api/middleware"
	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// sessionAndCar извлекает сессию и carId; при ошибке ответ уже записан
func (h *Handler) sessionAndCar(w http.ResponseWriter, r *http.Request, route string) (*domain.Session, int64, bool) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return nil, 0, false
	}

	carID, err := handlers.PathInt64(mux.Vars(r), "carId")
	if err != nil {
		h.logger.Warn("%s - Invalid car ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return nil, 0, false
	}

	return sess, carID, true
}
