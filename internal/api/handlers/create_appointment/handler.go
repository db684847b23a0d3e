package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается RFC3339"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgOutOfHours         = "время записи вне рабочих часов сотрудника"
	msgSlotUnavailable    = "выбранное время уже занято"
	msgInvalidDiscount    = "некорректная скидка"
	msgInvalidAppointDate = "некорректная дата записи"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(identity.Role)
	if err != nil {
		h.logger.Warn("POST /appointments - failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - slot unavailable: employee_id=%d", req.EmployeeID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, createAppointment.ErrEmployeeNotFound):
			h.logger.Warn("POST /appointments - employee not found: employee_id=%d", req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - service not found: employee_id=%d", req.EmployeeID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrOutOfHours):
			h.logger.Warn("POST /appointments - out of hours: employee_id=%d", req.EmployeeID)
			handlers.RespondError(w, http.StatusConflict, msgOutOfHours)

		case errors.Is(err, createAppointment.ErrInvalidDiscount):
			h.logger.Warn("POST /appointments - invalid discount: employee_id=%d", req.EmployeeID)
			handlers.RespondBadRequest(w, msgInvalidDiscount)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - invalid date: employee_id=%d", req.EmployeeID)
			handlers.RespondBadRequest(w, msgInvalidAppointDate)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - failed: employee_id=%d, error=%v", req.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - appointment created: id=%d, employee_id=%d", result.ID, req.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
