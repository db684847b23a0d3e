package companies

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CompanyRepository интерфейс репозитория компаний
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) (*domain.Company, error)
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	GetByLink(ctx context.Context, link string) (*domain.Company, error)
	LinkExists(ctx context.Context, link string) (bool, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
}

// WorkingHoursCreator создает компании стандартные рабочие часы
type WorkingHoursCreator interface {
	CreateDefaultWorkingHours(ctx context.Context, companyID int64) error
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
