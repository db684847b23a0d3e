package get_pending_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
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

// Handle GET /api/v1/appointments/pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListPending(r.Context())
	if err != nil {
		h.logger.Error("GET /appointments/pending - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/pending - fetched %d appointments", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
