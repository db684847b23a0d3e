package get_available_times

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableTimes "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_times"
)

// AvailableTimesResponse HTTP response model
type AvailableTimesResponse struct {
	Date       string   `json:"date"` // "2025-10-15"
	EmployeeID int64    `json:"employeeId"`
	ServiceIDs []int64  `json:"serviceIds"`
	Times      []string `json:"times"` // ["08:00", "08:30", ...]
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableTimes.Response) *AvailableTimesResponse {
	times := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		times = append(times, slot.String())
	}

	return &AvailableTimesResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		EmployeeID: resp.EmployeeID,
		ServiceIDs: resp.ServiceIDs,
		Times:      times,
	}
}
