package update_employee_schedule

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateEmployeeWorkingHours(ctx context.Context, req *models.UpdateEmployeeWorkingHoursRequest) (*models.WorkingHoursResponse, error)
	GetEmployeeWorkingHours(ctx context.Context, employeeID int64) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
