package update_company_schedule

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateCompanyWorkingHours(ctx context.Context, req *models.UpdateCompanyWorkingHoursRequest) (*models.WorkingHoursResponse, error)
	GetCompanyWorkingHours(ctx context.Context, companyID int64) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
