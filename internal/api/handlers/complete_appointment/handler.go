package complete_appointment

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
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingCompanyID     = "не указана компания вызывающего"
	msgAppointmentNotFound  = "запись не найдена"
	msgAccessDenied         = "доступ запрещен"
	msgInvalidState         = "завершить можно только запись в статусе PENDING"
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

// Handle PATCH /api/v1/appointments/{id}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/complete - invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity.CompanyID == 0 {
		h.logger.Warn("PATCH /appointments/{id}/complete - missing company ID: id=%d", id)
		handlers.RespondForbidden(w, msgMissingCompanyID)
		return
	}

	result, err := h.service.MarkAsCompleted(r.Context(), id, identity.CompanyID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/complete - appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/complete - access denied: id=%d, company=%d", id, identity.CompanyID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointments.ErrInvalidState):
			h.logger.Warn("PATCH /appointments/{id}/complete - appointment is not pending: id=%d", id)
			handlers.RespondError(w, http.StatusConflict, msgInvalidState)

		default:
			h.logger.Error("PATCH /appointments/{id}/complete - failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/complete - appointment completed: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
