package get_available_times

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableTimes "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_times"
)

const (
	msgInvalidEmployeeID = "некорректный идентификатор сотрудника"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidServiceIDs = "некорректный список услуг"
	msgEmployeeNotFound  = "сотрудник не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgInvalidRequest    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/available-times?date=YYYY-MM-DD&serviceIds=1,2[&blocksOnly=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(mux.Vars(r)["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-times - invalid employee id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /available-times - invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceIDs, err := parseServiceIDs(r.URL.Query().Get("serviceIds"))
	if err != nil {
		h.logger.Warn("GET /available-times - invalid serviceIds: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	blocksOnly := r.URL.Query().Get("blocksOnly") == "true"

	result, err := h.useCase.Execute(r.Context(), &getAvailableTimes.Request{
		UserID:     identity.UserID,
		EmployeeID: employeeID,
		Date:       date,
		ServiceIDs: serviceIDs,
		BlocksOnly: blocksOnly,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTimes.ErrEmployeeNotFound):
			h.logger.Warn("GET /available-times - employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getAvailableTimes.ErrServiceNotFound):
			h.logger.Warn("GET /available-times - service not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableTimes.ErrInvalidInput):
			h.logger.Warn("GET /available-times - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /available-times - failed: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parseServiceIDs разбирает список ID услуг из query-параметра "1,2,3"
func parseServiceIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
