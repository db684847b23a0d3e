package create_block

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на блокировку времени сотрудника
type Request struct {
	EmployeeID int64     // ID сотрудника
	StartDate  time.Time // Начало блокировки
	EndDate    time.Time // Конец блокировки
}

// Response модель ответа с созданной блокировкой
type Response struct {
	ID                   int64
	CompanyID            int64
	EmployeeID           int64
	Date                 time.Time
	Status               string
	IsBlock              bool
	TotalDurationMinutes int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// toResponse конвертирует доменную запись в модель ответа
func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:                   appt.ID,
		CompanyID:            appt.CompanyID,
		EmployeeID:           appt.EmployeeID,
		Date:                 appt.Date,
		Status:               string(appt.Status),
		IsBlock:              appt.IsBlock,
		TotalDurationMinutes: appt.TotalDurationMinutes,
		CreatedAt:            appt.CreatedAt,
		UpdatedAt:            appt.UpdatedAt,
	}
}
