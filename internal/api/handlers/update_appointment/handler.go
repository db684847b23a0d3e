package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается RFC3339"
	msgAppointmentNotFound  = "запись не найдена"
	msgEmployeeNotFound     = "сотрудник не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgOutOfHours           = "время записи вне рабочих часов сотрудника"
	msgSlotUnavailable      = "выбранное время уже занято"
	msgInvalidDiscount      = "некорректная скидка"
	msgInvalidAppointDate   = "некорректная дата записи"
	msgInvalidState         = "изменить можно только запись в статусе PENDING"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id} - invalid request body: id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(id, identity.Role)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - failed to parse date: id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id} - appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, updateAppointment.ErrInvalidState):
			h.logger.Warn("PUT /appointments/{id} - appointment is not pending: id=%d", id)
			handlers.RespondError(w, http.StatusConflict, msgInvalidState)

		case errors.Is(err, updateAppointment.ErrSlotUnavailable):
			h.logger.Warn("PUT /appointments/{id} - slot unavailable: id=%d, employee_id=%d", id, req.EmployeeID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, updateAppointment.ErrEmployeeNotFound):
			h.logger.Warn("PUT /appointments/{id} - employee not found: id=%d, employee_id=%d", id, req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, updateAppointment.ErrServiceNotFound):
			h.logger.Warn("PUT /appointments/{id} - service not found: id=%d", id)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateAppointment.ErrOutOfHours):
			h.logger.Warn("PUT /appointments/{id} - out of hours: id=%d, employee_id=%d", id, req.EmployeeID)
			handlers.RespondError(w, http.StatusConflict, msgOutOfHours)

		case errors.Is(err, updateAppointment.ErrInvalidDiscount):
			h.logger.Warn("PUT /appointments/{id} - invalid discount: id=%d", id)
			handlers.RespondBadRequest(w, msgInvalidDiscount)

		case errors.Is(err, updateAppointment.ErrInvalidDate):
			h.logger.Warn("PUT /appointments/{id} - invalid date: id=%d", id)
			handlers.RespondBadRequest(w, msgInvalidAppointDate)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id} - invalid input: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /appointments/{id} - failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id} - appointment updated: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
