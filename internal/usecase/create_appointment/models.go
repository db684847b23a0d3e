package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID   *int64      // ID клиента (nil для записей без привязки к клиенту)
	EmployeeID int64       // ID сотрудника
	Date       time.Time   // Момент начала записи (дата + время)
	ServiceIDs []int64     // Выбранные услуги
	Discount   float64     // Скидка; учитывается только для ADMIN и EMPLOYEE
	Role       domain.Role // Роль вызывающего
}

// Response модель ответа с созданной записью
type Response struct {
	ID                   int64
	CompanyID            int64
	EmployeeID           int64
	ClientID             *int64
	Date                 time.Time
	Status               string
	TotalDurationMinutes int
	SubTotalPrice        float64
	Discount             float64
	TotalPrice           float64
	ServiceIDs           []int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// toResponse конвертирует доменную запись в модель ответа
func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:                   appt.ID,
		CompanyID:            appt.CompanyID,
		EmployeeID:           appt.EmployeeID,
		ClientID:             appt.ClientID,
		Date:                 appt.Date,
		Status:               string(appt.Status),
		TotalDurationMinutes: appt.TotalDurationMinutes,
		SubTotalPrice:        appt.SubTotalPrice,
		Discount:             appt.Discount,
		TotalPrice:           appt.TotalPrice,
		ServiceIDs:           appt.ServiceIDs,
		CreatedAt:            appt.CreatedAt,
		UpdatedAt:            appt.UpdatedAt,
	}
}
