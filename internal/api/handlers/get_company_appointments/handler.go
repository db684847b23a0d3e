package get_company_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
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

// Handle GET /api/v1/companies/{companyId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{companyId}/appointments - invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	result, err := h.service.ListByCompany(r.Context(), companyID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /companies/{companyId}/appointments - invalid input: company=%d", companyID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /companies/{companyId}/appointments - failed: company=%d, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{companyId}/appointments - fetched %d appointments: company=%d", result.Total, companyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
