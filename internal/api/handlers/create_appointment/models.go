package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientID   *int64  `json:"clientId,omitempty"`
	EmployeeID int64   `json:"employeeId"`
	Date       string  `json:"date"` // RFC3339, например "2025-10-15T10:00:00Z"
	ServiceIDs []int64 `json:"serviceIds"`
	Discount   float64 `json:"discount,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                   int64   `json:"id"`
	CompanyID            int64   `json:"companyId"`
	EmployeeID           int64   `json:"employeeId"`
	ClientID             *int64  `json:"clientId,omitempty"`
	Date                 string  `json:"date"`
	Status               string  `json:"status"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	SubTotalPrice        float64 `json:"subTotalPrice"`
	Discount             float64 `json:"discount"`
	TotalPrice           float64 `json:"totalPrice"`
	ServiceIDs           []int64 `json:"serviceIds"`
	CreatedAt            string  `json:"createdAt"`
	UpdatedAt            string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(role domain.Role) (*createAppointment.Request, error) {
	date, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:   r.ClientID,
		EmployeeID: r.EmployeeID,
		Date:       date,
		ServiceIDs: r.ServiceIDs,
		Discount:   r.Discount,
		Role:       role,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                   resp.ID,
		CompanyID:            resp.CompanyID,
		EmployeeID:           resp.EmployeeID,
		ClientID:             resp.ClientID,
		Date:                 resp.Date.Format(time.RFC3339),
		Status:               resp.Status,
		TotalDurationMinutes: resp.TotalDurationMinutes,
		SubTotalPrice:        resp.SubTotalPrice,
		Discount:             resp.Discount,
		TotalPrice:           resp.TotalPrice,
		ServiceIDs:           resp.ServiceIDs,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            resp.UpdatedAt.Format(time.RFC3339),
	}
}
