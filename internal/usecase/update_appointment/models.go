package update_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на изменение записи
type Request struct {
	ID         int64       // ID изменяемой записи
	ClientID   *int64      // Новый клиент (nil оставляет запись без клиента)
	EmployeeID int64       // Новый сотрудник
	Date       time.Time   // Новый момент начала
	ServiceIDs []int64     // Новый набор услуг (полностью заменяет старый)
	Discount   float64     // Скидка; учитывается только для ADMIN и EMPLOYEE
	Role       domain.Role // Роль вызывающего
}

// Response модель ответа с изменённой записью
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
