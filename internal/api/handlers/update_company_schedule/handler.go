package update_company_schedule

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
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCompanyNotFound    = "компания не найдена"
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

// Handle PUT /api/v1/companies/{companyId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /companies/{companyId}/working-hours - invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity.CompanyID != companyID {
		h.logger.Warn("PUT /companies/{companyId}/working-hours - access denied: company=%d, caller=%d",
			companyID, identity.CompanyID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req models.UpdateCompanyWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /companies/{companyId}/working-hours - invalid request body: company=%d, error=%v", companyID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.CompanyID = companyID

	result, err := h.service.UpdateCompanyWorkingHours(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrCompanyNotFound):
			h.logger.Warn("PUT /companies/{companyId}/working-hours - company not found: company=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /companies/{companyId}/working-hours - invalid input: company=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /companies/{companyId}/working-hours - failed: company=%d, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /companies/{companyId}/working-hours - updated: company=%d, windows=%d",
		companyID, len(result.WorkingHours))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/companies/{companyId}/working-hours
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{companyId}/working-hours - invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	result, err := h.service.GetCompanyWorkingHours(r.Context(), companyID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{companyId}/working-hours - company not found: company=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		default:
			h.logger.Error("GET /companies/{companyId}/working-hours - failed: company=%d, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
