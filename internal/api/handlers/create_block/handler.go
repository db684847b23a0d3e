package create_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	createBlock "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_block"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается RFC3339"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgSlotUnavailable    = "интервал блокировки пересекается с существующей записью"
	msgInvalidRange       = "конец блокировки должен быть позже её начала"
)

type Handler struct {
	useCase CreateBlockUseCase
	logger  Logger
}

func NewHandler(useCase CreateBlockUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/block - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments/block - failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBlock.ErrEmployeeNotFound):
			h.logger.Warn("POST /appointments/block - employee not found: employee_id=%d", req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, createBlock.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments/block - slot unavailable: employee_id=%d", req.EmployeeID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, createBlock.ErrInvalidRange):
			h.logger.Warn("POST /appointments/block - invalid range: employee_id=%d", req.EmployeeID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createBlock.ErrInvalidInput):
			h.logger.Warn("POST /appointments/block - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments/block - failed: employee_id=%d, error=%v", req.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/block - block created: id=%d, employee_id=%d", result.ID, req.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
