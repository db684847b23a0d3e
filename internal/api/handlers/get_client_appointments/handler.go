package get_client_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidClientID  = "некорректный ID клиента"
	msgMissingCompanyID = "не указана компания вызывающего"
	msgInvalidInput     = "некорректные входные данные"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clientID, err := strconv.ParseInt(vars["clientId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clients/{clientId}/appointments - invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity.CompanyID == 0 {
		h.logger.Warn("GET /clients/{clientId}/appointments - missing company ID: client=%d", clientID)
		handlers.RespondForbidden(w, msgMissingCompanyID)
		return
	}

	result, err := h.service.ListByClient(r.Context(), clientID, identity.CompanyID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /clients/{clientId}/appointments - invalid input: client=%d", clientID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /clients/{clientId}/appointments - failed: client=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{clientId}/appointments - fetched %d appointments: client=%d", result.Total, clientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
