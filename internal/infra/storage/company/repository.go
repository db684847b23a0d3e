package company

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с компаниями и их рабочими часами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория компаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает компанию. Рабочие часы по умолчанию создаются отдельно
// вызывающим кодом (см. service/schedule).
func (r *Repository) Create(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("companies").
		Columns(
			"name",
			"link",
			"email",
			"phone",
			"description",
			"interval_between_appointments",
		).
		Values(
			company.Name,
			company.Link,
			company.Email,
			company.Phone,
			company.Description,
			company.IntervalBetweenAppointments,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&company.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	company.CreatedAt = createdAt.Time
	company.UpdatedAt = updatedAt.Time

	return company, nil
}

// GetByID получает компанию по ID вместе с рабочими часами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"link",
		"email",
		"phone",
		"description",
		"interval_between_appointments",
		"created_at",
		"updated_at",
	).
		From("companies").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var company domain.Company
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&company.ID,
		&company.Name,
		&company.Link,
		&company.Email,
		&company.Phone,
		&company.Description,
		&company.IntervalBetweenAppointments,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan company: %v", ErrScanRow, err)
	}

	company.CreatedAt = createdAt.Time
	company.UpdatedAt = updatedAt.Time

	windows, err := r.GetWorkingHours(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	company.WorkingHours = windows

	return &company, nil
}

// GetByLink получает компанию по уникальному slug
func (r *Repository) GetByLink(ctx context.Context, link string) (*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("companies").
		Where(squirrel.Eq{"link": link}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByLink - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByLink - scan id: %v", ErrScanRow, err)
	}

	return r.GetByID(ctx, id)
}

// LinkExists проверяет занятость slug
func (r *Repository) LinkExists(ctx context.Context, link string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("companies").
		Where(squirrel.Eq{"link": link}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: LinkExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: LinkExists - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// UpdateInterval обновляет интервал между записями
func (r *Repository) UpdateInterval(ctx context.Context, companyID int64, interval int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("companies").
		Set("interval_between_appointments", interval).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": companyID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateInterval - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateInterval - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateInterval - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrCompanyNotFound
	}

	return nil
}

// GetWorkingHours получает рабочие часы компании, отсортированные по дню недели
func (r *Repository) GetWorkingHours(ctx context.Context, companyID int64) ([]domain.DailyWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_of_week", "start_time", "end_time").
		From("company_working_hours").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.DailyWindow, 0)
	for rows.Next() {
		var w domain.DailyWindow
		if err := rows.Scan(&w.DayOfWeek, &w.StartTime, &w.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetWorkingHours - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// UpsertWorkingHour создает или обновляет окно компании на день недели
func (r *Repository) UpsertWorkingHour(ctx context.Context, companyID int64, window domain.DailyWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("company_working_hours").
		Columns("company_id", "day_of_week", "start_time", "end_time").
		Values(companyID, window.DayOfWeek, window.StartTime, window.EndTime).
		Suffix("ON CONFLICT (company_id, day_of_week) DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertWorkingHour - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertWorkingHour - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteWorkingHoursNotIn удаляет окна компании для дней, отсутствующих в keepDays.
// Пустой keepDays удаляет все окна.
func (r *Repository) DeleteWorkingHoursNotIn(ctx context.Context, companyID int64, keepDays []int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("company_working_hours").
		Where(squirrel.Eq{"company_id": companyID})

	if len(keepDays) > 0 {
		deleteBuilder = deleteBuilder.Where(squirrel.NotEq{"day_of_week": keepDays})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteWorkingHoursNotIn - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteWorkingHoursNotIn - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
