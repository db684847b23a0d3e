package category_working_hours

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
	msgInvalidWindowID    = "некорректный ID рабочего окна"
	msgInvalidEmployeeID  = "некорректный ID сотрудника"
	msgInvalidCategoryID  = "некорректный ID категории"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCompanyID   = "не указана компания вызывающего"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgCategoryNotFound   = "категория не найдена"
	msgWindowNotFound     = "рабочее окно не найдено"
	msgDuplicateWindow    = "окно на этот день уже существует"
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

// HandleCreate POST /api/v1/category-working-hours
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity.CompanyID == 0 {
		h.logger.Warn("POST /category-working-hours - missing company ID")
		handlers.RespondForbidden(w, msgMissingCompanyID)
		return
	}

	var input models.CategoryWorkingHourInput
	if err := handlers.DecodeJSON(r, &input); err != nil {
		h.logger.Warn("POST /category-working-hours - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateCategoryWorkingHour(r.Context(), input, identity.CompanyID)
	if err != nil {
		h.respondServiceError(w, "POST /category-working-hours", err)
		return
	}

	h.logger.Info("POST /category-working-hours - created: id=%d, employee=%d, category=%d",
		result.ID, result.EmployeeID, result.CategoryID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleBulkCreate POST /api/v1/category-working-hours/bulk
func (h *Handler) HandleBulkCreate(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity.CompanyID == 0 {
		h.logger.Warn("POST /category-working-hours/bulk - missing company ID")
		handlers.RespondForbidden(w, msgMissingCompanyID)
		return
	}

	var req models.BulkCreateCategoryWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /category-working-hours/bulk - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.CallerCompanyID = identity.CompanyID

	result, err := h.service.BulkCreateCategoryWorkingHours(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /category-working-hours/bulk", err)
		return
	}

	h.logger.Info("POST /category-working-hours/bulk - created=%d, failed=%d",
		len(result.Created), len(result.Failed))
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/employees/{employeeId}/category-working-hours?categoryId=1
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{employeeId}/category-working-hours - invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity.CompanyID == 0 {
		h.logger.Warn("GET /employees/{employeeId}/category-working-hours - missing company ID: employee=%d", employeeID)
		handlers.RespondForbidden(w, msgMissingCompanyID)
		return
	}

	var categoryID *int64
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /employees/{employeeId}/category-working-hours - invalid category ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCategoryID)
			return
		}
		categoryID = &id
	}

	result, err := h.service.ListCategoryWorkingHours(r.Context(), employeeID, categoryID, identity.CompanyID)
	if err != nil {
		h.respondServiceError(w, "GET /employees/{employeeId}/category-working-hours", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/category-working-hours/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /category-working-hours/{id} - invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity.CompanyID == 0 {
		h.logger.Warn("PUT /category-working-hours/{id} - missing company ID: id=%d", id)
		handlers.RespondForbidden(w, msgMissingCompanyID)
		return
	}

	var req models.UpdateCategoryWorkingHourRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /category-working-hours/{id} - invalid request body: id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ID = id
	req.CallerCompanyID = identity.CompanyID

	result, err := h.service.UpdateCategoryWorkingHour(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "PUT /category-working-hours/{id}", err)
		return
	}

	h.logger.Info("PUT /category-working-hours/{id} - updated: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/category-working-hours/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /category-working-hours/{id} - invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity.CompanyID == 0 {
		h.logger.Warn("DELETE /category-working-hours/{id} - missing company ID: id=%d", id)
		handlers.RespondForbidden(w, msgMissingCompanyID)
		return
	}

	if err := h.service.DeleteCategoryWorkingHour(r.Context(), id, identity.CompanyID); err != nil {
		h.respondServiceError(w, "DELETE /category-working-hours/{id}", err)
		return
	}

	h.logger.Info("DELETE /category-working-hours/{id} - deleted: id=%d", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// respondServiceError транслирует ошибки сервиса расписаний в HTTP статусы
func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, schedule.ErrEmployeeNotFound):
		h.logger.Warn("%s - employee not found: %v", op, err)
		handlers.RespondNotFound(w, msgEmployeeNotFound)

	case errors.Is(err, schedule.ErrCategoryNotFound):
		h.logger.Warn("%s - category not found: %v", op, err)
		handlers.RespondNotFound(w, msgCategoryNotFound)

	case errors.Is(err, schedule.ErrWindowNotFound):
		h.logger.Warn("%s - window not found: %v", op, err)
		handlers.RespondNotFound(w, msgWindowNotFound)

	case errors.Is(err, schedule.ErrDuplicateWindow):
		h.logger.Warn("%s - duplicate window: %v", op, err)
		handlers.RespondError(w, http.StatusConflict, msgDuplicateWindow)

	case errors.Is(err, schedule.ErrAccessDenied):
		h.logger.Warn("%s - access denied: %v", op, err)
		handlers.RespondForbidden(w, msgAccessDenied)

	case errors.Is(err, schedule.ErrInvalidInput):
		h.logger.Warn("%s - invalid input: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - failed: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
