package employee

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var employeeColumns = []string{
	"id",
	"company_id",
	"name",
	"is_active",
	"service_interval",
	"start_hour",
	"end_hour",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сотрудниками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает сотрудника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(employeeColumns...).
		From("employees").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var e domain.Employee
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&e.ID,
		&e.CompanyID,
		&e.Name,
		&e.IsActive,
		&e.ServiceInterval,
		&e.StartHour,
		&e.EndHour,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan employee: %v", ErrScanRow, err)
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}

// ListByCompany получает сотрудников компании
func (r *Repository) ListByCompany(ctx context.Context, companyID int64) ([]*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(employeeColumns...).
		From("employees").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		var e domain.Employee
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&e.ID,
			&e.CompanyID,
			&e.Name,
			&e.IsActive,
			&e.ServiceInterval,
			&e.StartHour,
			&e.EndHour,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByCompany - scan row: %v", ErrScanRow, err)
		}

		e.CreatedAt = createdAt.Time
		e.UpdatedAt = updatedAt.Time

		employees = append(employees, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - rows error: %v", ErrScanRow, err)
	}

	return employees, nil
}
