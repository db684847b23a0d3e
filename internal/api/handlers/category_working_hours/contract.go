package category_working_hours

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateCategoryWorkingHour(ctx context.Context, input models.CategoryWorkingHourInput, callerCompanyID int64) (*models.CategoryWorkingHourResponse, error)
	BulkCreateCategoryWorkingHours(ctx context.Context, req *models.BulkCreateCategoryWorkingHoursRequest) (*models.BulkCreateCategoryWorkingHoursResponse, error)
	ListCategoryWorkingHours(ctx context.Context, employeeID int64, categoryID *int64, callerCompanyID int64) ([]*models.CategoryWorkingHourResponse, error)
	UpdateCategoryWorkingHour(ctx context.Context, req *models.UpdateCategoryWorkingHourRequest) (*models.CategoryWorkingHourResponse, error)
	DeleteCategoryWorkingHour(ctx context.Context, id int64, callerCompanyID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
