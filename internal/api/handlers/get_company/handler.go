package get_company

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/companies"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgCompanyNotFound  = "компания не найдена"
)

type Handler struct {
	service CompanyService
	logger  Logger
}

func NewHandler(service CompanyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{companyId} - invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	result, err := h.service.GetByID(r.Context(), companyID)
	if err != nil {
		switch {
		case errors.Is(err, companies.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{companyId} - company not found: company=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		default:
			h.logger.Error("GET /companies/{companyId} - failed: company=%d, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleByLink GET /api/v1/companies/by-link/{link}
func (h *Handler) HandleByLink(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	link := vars["link"]

	result, err := h.service.GetByLink(r.Context(), link)
	if err != nil {
		switch {
		case errors.Is(err, companies.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/by-link/{link} - company not found: link=%s", link)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, companies.ErrInvalidInput):
			h.logger.Warn("GET /companies/by-link/{link} - invalid link: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCompanyID)

		default:
			h.logger.Error("GET /companies/by-link/{link} - failed: link=%s, error=%v", link, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
