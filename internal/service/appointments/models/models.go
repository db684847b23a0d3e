package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                   int64   `json:"id"`
	CompanyID            int64   `json:"companyId"`
	EmployeeID           int64   `json:"employeeId"`
	ClientID             *int64  `json:"clientId,omitempty"`
	Date                 string  `json:"date"` // "2025-10-15T10:00:00Z"
	Status               string  `json:"status"`
	IsBlock              bool    `json:"isBlock"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	SubTotalPrice        float64 `json:"subTotalPrice"`
	Discount             float64 `json:"discount"`
	TotalPrice           float64 `json:"totalPrice"`
	ServiceIDs           []int64 `json:"serviceIds"`
	CreatedAt            string  `json:"createdAt"`
	UpdatedAt            string  `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment конвертирует доменную запись в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                   a.ID,
		CompanyID:            a.CompanyID,
		EmployeeID:           a.EmployeeID,
		ClientID:             a.ClientID,
		Date:                 a.Date.Format(time.RFC3339),
		Status:               string(a.Status),
		IsBlock:              a.IsBlock,
		TotalDurationMinutes: a.TotalDurationMinutes,
		SubTotalPrice:        a.SubTotalPrice,
		Discount:             a.Discount,
		TotalPrice:           a.TotalPrice,
		ServiceIDs:           a.ServiceIDs,
		CreatedAt:            a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            a.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainAppointmentList конвертирует список доменных записей в response
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	result := make([]*AppointmentResponse, 0, len(appts))
	for _, a := range appts {
		result = append(result, FromDomainAppointment(a))
	}
	return &AppointmentListResponse{
		Appointments: result,
		Total:        len(result),
	}
}
