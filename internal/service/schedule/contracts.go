package schedule

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
)

// CompanyRepository интерфейс репозитория компаний
type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	UpdateInterval(ctx context.Context, companyID int64, interval int) error
	GetWorkingHours(ctx context.Context, companyID int64) ([]domain.DailyWindow, error)
	UpsertWorkingHour(ctx context.Context, companyID int64, window domain.DailyWindow) error
	DeleteWorkingHoursNotIn(ctx context.Context, companyID int64, keepDays []int) error
}

// EmployeeRepository интерфейс репозитория сотрудников
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
}

// ScheduleRepository интерфейс репозитория расписаний сотрудников
type ScheduleRepository interface {
	ListEmployeeWindows(ctx context.Context, employeeID int64) ([]domain.DailyWindow, error)
	ListEmployeeWindowsByCompany(ctx context.Context, companyID int64) ([]scheduleRepo.EmployeeWindow, error)
	UpsertEmployeeWindow(ctx context.Context, employeeID int64, window domain.DailyWindow) error
	DeleteEmployeeWindowsNotIn(ctx context.Context, employeeID int64, keepDays []int) error
	DeleteEmployeeWindowsForDays(ctx context.Context, companyID int64, days []int) error

	CreateCategoryWindow(ctx context.Context, hour *domain.EmployeeCategoryWorkingHour) (*domain.EmployeeCategoryWorkingHour, error)
	GetCategoryWindow(ctx context.Context, id int64) (*domain.EmployeeCategoryWorkingHour, error)
	ListCategoryWindows(ctx context.Context, employeeID int64, categoryID *int64) ([]domain.EmployeeCategoryWorkingHour, error)
	ListCategoryWindowsByCompany(ctx context.Context, companyID int64) ([]domain.EmployeeCategoryWorkingHour, error)
	UpdateCategoryWindow(ctx context.Context, id int64, window domain.DailyWindow) error
	DeleteCategoryWindow(ctx context.Context, id int64) error
	DeleteCategoryWindowsForEmployeeDays(ctx context.Context, employeeID int64, days []int) error
	DeleteCategoryWindowsForDays(ctx context.Context, companyID int64, days []int) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
