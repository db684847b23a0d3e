package get_available_times

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListForEmployeeBetween получает PENDING записи сотрудника в интервале дат
	ListForEmployeeBetween(ctx context.Context, employeeID int64, from, to time.Time, blocksOnly bool) ([]*domain.Appointment, error)
}

// EmployeeRepository интерфейс репозитория сотрудников
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
}

// CompanyRepository интерфейс репозитория компаний
type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetServicesByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория расписаний сотрудника
type ScheduleRepository interface {
	ListEmployeeWindows(ctx context.Context, employeeID int64) ([]domain.DailyWindow, error)
	ListCategoryWindows(ctx context.Context, employeeID int64, categoryID *int64) ([]domain.EmployeeCategoryWorkingHour, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
