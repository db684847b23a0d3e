package update_employee_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

const (
	msgInvalidEmployeeID  = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCompanyID   = "не указана компания вызывающего"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgAccessDenied       = "доступ запрещен"
	msgInvalidInput       = "некорректные рабочие часы"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/employees/{employeeId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /employees/{employeeId}/working-hours - invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity.CompanyID == 0 {
		h.logger.Warn("PUT /employees/{employeeId}/working-hours - missing company ID: employee=%d", employeeID)
		handlers.RespondForbidden(w, msgMissingCompanyID)
		return
	}

	var req models.UpdateEmployeeWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /employees/{employeeId}/working-hours - invalid request body: employee=%d, error=%v", employeeID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.EmployeeID = employeeID
	req.CallerCompanyID = identity.CompanyID

	result, err := h.service.UpdateEmployeeWorkingHours(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrEmployeeNotFound):
			h.logger.Warn("PUT /employees/{employeeId}/working-hours - employee not found: employee=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /employees/{employeeId}/working-hours - access denied: employee=%d, company=%d",
				employeeID, identity.CompanyID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /employees/{employeeId}/working-hours - invalid input: employee=%d, error=%v", employeeID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /employees/{employeeId}/working-hours - failed: employee=%d, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /employees/{employeeId}/working-hours - updated: employee=%d, windows=%d",
		employeeID, len(result.WorkingHours))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/employees/{employeeId}/working-hours
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{employeeId}/working-hours - invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	result, err := h.service.GetEmployeeWorkingHours(r.Context(), employeeID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrEmployeeNotFound):
			h.logger.Warn("GET /employees/{employeeId}/working-hours - employee not found: employee=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		default:
			h.logger.Error("GET /employees/{employeeId}/working-hours - failed: employee=%d, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
