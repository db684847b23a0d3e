package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CreateCompanyRequest запрос на регистрацию компании
type CreateCompanyRequest struct {
	Name                        string  `json:"name"`
	Email                       string  `json:"email"`
	Phone                       *string `json:"phone,omitempty"`
	Description                 *string `json:"description,omitempty"`
	IntervalBetweenAppointments int     `json:"intervalBetweenAppointments,omitempty"`
}

// WindowResponse рабочее окно в ответе
type WindowResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// CompanyResponse ответ с данными компании
type CompanyResponse struct {
	ID                          int64            `json:"id"`
	Name                        string           `json:"name"`
	Link                        string           `json:"link"`
	Email                       string           `json:"email"`
	Phone                       *string          `json:"phone,omitempty"`
	Description                 *string          `json:"description,omitempty"`
	IntervalBetweenAppointments int              `json:"intervalBetweenAppointments"`
	WorkingHours                []WindowResponse `json:"workingHours"`
	CreatedAt                   string           `json:"createdAt"`
	UpdatedAt                   string           `json:"updatedAt"`
}

// FromDomainCompany конвертирует доменную компанию в response
func FromDomainCompany(c *domain.Company) *CompanyResponse {
	windows := make([]WindowResponse, 0, len(c.WorkingHours))
	for _, w := range c.WorkingHours {
		windows = append(windows, WindowResponse{
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		})
	}

	return &CompanyResponse{
		ID:                          c.ID,
		Name:                        c.Name,
		Link:                        c.Link,
		Email:                       c.Email,
		Phone:                       c.Phone,
		Description:                 c.Description,
		IntervalBetweenAppointments: c.IntervalBetweenAppointments,
		WorkingHours:                windows,
		CreatedAt:                   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                   c.UpdatedAt.Format(time.RFC3339),
	}
}
