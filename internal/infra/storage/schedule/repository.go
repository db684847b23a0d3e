package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

// EmployeeWindow персональное окно сотрудника вместе с его ID.
// Используется при каскадной синхронизации расписаний по всей компании.
type EmployeeWindow struct {
	EmployeeID int64
	Window     domain.DailyWindow
}

// Repository репозиторий для персональных и категорийных рабочих часов сотрудников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListEmployeeWindows получает персональные окна сотрудника, отсортированные по дню недели
func (r *Repository) ListEmployeeWindows(ctx context.Context, employeeID int64) ([]domain.DailyWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_of_week", "start_time", "end_time").
		From("employee_working_hours").
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListEmployeeWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEmployeeWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.DailyWindow, 0)
	for rows.Next() {
		var w domain.DailyWindow
		if err := rows.Scan(&w.DayOfWeek, &w.StartTime, &w.EndTime); err != nil {
			return nil, fmt.Errorf("%w: ListEmployeeWindows - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEmployeeWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// ListEmployeeWindowsByCompany получает персональные окна всех сотрудников компании.
// Нужен каскаду синхронизации при изменении часов компании.
func (r *Repository) ListEmployeeWindowsByCompany(ctx context.Context, companyID int64) ([]EmployeeWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("ewh.employee_id", "ewh.day_of_week", "ewh.start_time", "ewh.end_time").
		From("employee_working_hours ewh").
		Join("employees e ON e.id = ewh.employee_id").
		Where(squirrel.Eq{"e.company_id": companyID}).
		OrderBy("ewh.employee_id ASC", "ewh.day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListEmployeeWindowsByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEmployeeWindowsByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]EmployeeWindow, 0)
	for rows.Next() {
		var ew EmployeeWindow
		if err := rows.Scan(&ew.EmployeeID, &ew.Window.DayOfWeek, &ew.Window.StartTime, &ew.Window.EndTime); err != nil {
			return nil, fmt.Errorf("%w: ListEmployeeWindowsByCompany - scan row: %v", ErrScanRow, err)
		}
		result = append(result, ew)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEmployeeWindowsByCompany - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpsertEmployeeWindow создает или обновляет персональное окно сотрудника на день недели
func (r *Repository) UpsertEmployeeWindow(ctx context.Context, employeeID int64, window domain.DailyWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("employee_working_hours").
		Columns("employee_id", "day_of_week", "start_time", "end_time").
		Values(employeeID, window.DayOfWeek, window.StartTime, window.EndTime).
		Suffix("ON CONFLICT (employee_id, day_of_week) DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertEmployeeWindow - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertEmployeeWindow - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteEmployeeWindowsNotIn удаляет персональные окна сотрудника для дней,
// отсутствующих в keepDays. Пустой keepDays удаляет все окна.
func (r *Repository) DeleteEmployeeWindowsNotIn(ctx context.Context, employeeID int64, keepDays []int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("employee_working_hours").
		Where(squirrel.Eq{"employee_id": employeeID})

	if len(keepDays) > 0 {
		deleteBuilder = deleteBuilder.Where(squirrel.NotEq{"day_of_week": keepDays})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteEmployeeWindowsNotIn - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteEmployeeWindowsNotIn - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteEmployeeWindowsForDays удаляет персональные окна всех сотрудников компании
// на перечисленные дни недели. Каскад при удалении дня из часов компании.
func (r *Repository) DeleteEmployeeWindowsForDays(ctx context.Context, companyID int64, days []int) error {
	if len(days) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("employee_working_hours").
		Where(squirrel.Eq{"day_of_week": days}).
		Where(squirrel.Expr("employee_id IN (SELECT id FROM employees WHERE company_id = ?)", companyID)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteEmployeeWindowsForDays - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteEmployeeWindowsForDays - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateCategoryWindow создает категорийное окно сотрудника.
// Нарушение уникальности (employee_id, category_id, day_of_week) возвращает ErrDuplicateWindow.
func (r *Repository) CreateCategoryWindow(ctx context.Context, hour *domain.EmployeeCategoryWorkingHour) (*domain.EmployeeCategoryWorkingHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("employee_category_working_hours").
		Columns("employee_id", "category_id", "day_of_week", "start_time", "end_time").
		Values(hour.EmployeeID, hour.CategoryID, hour.DayOfWeek, hour.StartTime, hour.EndTime).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateCategoryWindow - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&hour.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateWindow
		}
		return nil, fmt.Errorf("%w: CreateCategoryWindow - execute insert: %v", ErrExecQuery, err)
	}

	return hour, nil
}

// GetCategoryWindow получает категорийное окно по ID
func (r *Repository) GetCategoryWindow(ctx context.Context, id int64) (*domain.EmployeeCategoryWorkingHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "employee_id", "category_id", "day_of_week", "start_time", "end_time").
		From("employee_category_working_hours").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCategoryWindow - build select query: %v", ErrBuildQuery, err)
	}

	var h domain.EmployeeCategoryWorkingHour
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&h.ID,
		&h.EmployeeID,
		&h.CategoryID,
		&h.DayOfWeek,
		&h.StartTime,
		&h.EndTime,
	)

	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCategoryWindow - scan row: %v", ErrScanRow, err)
	}

	return &h, nil
}

// ListCategoryWindows получает категорийные окна сотрудника.
// categoryID = nil возвращает все окна сотрудника.
func (r *Repository) ListCategoryWindows(ctx context.Context, employeeID int64, categoryID *int64) ([]domain.EmployeeCategoryWorkingHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "employee_id", "category_id", "day_of_week", "start_time", "end_time").
		From("employee_category_working_hours").
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("category_id ASC", "day_of_week ASC")

	if categoryID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category_id": *categoryID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategoryWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategoryWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanCategoryWindows(rows, "ListCategoryWindows")
}

// ListCategoryWindowsByCompany получает категорийные окна всех сотрудников компании.
// Нужен каскаду синхронизации при изменении часов компании.
func (r *Repository) ListCategoryWindowsByCompany(ctx context.Context, companyID int64) ([]domain.EmployeeCategoryWorkingHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("ecwh.id", "ecwh.employee_id", "ecwh.category_id", "ecwh.day_of_week", "ecwh.start_time", "ecwh.end_time").
		From("employee_category_working_hours ecwh").
		Join("employees e ON e.id = ecwh.employee_id").
		Where(squirrel.Eq{"e.company_id": companyID}).
		OrderBy("ecwh.employee_id ASC", "ecwh.day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCategoryWindowsByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategoryWindowsByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanCategoryWindows(rows, "ListCategoryWindowsByCompany")
}

// UpdateCategoryWindow обновляет время категорийного окна
func (r *Repository) UpdateCategoryWindow(ctx context.Context, id int64, window domain.DailyWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("employee_category_working_hours").
		Set("start_time", window.StartTime).
		Set("end_time", window.EndTime).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateCategoryWindow - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCategoryWindow - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCategoryWindow - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

// DeleteCategoryWindow удаляет категорийное окно по ID
func (r *Repository) DeleteCategoryWindow(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("employee_category_working_hours").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteCategoryWindow - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteCategoryWindow - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteCategoryWindow - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

// DeleteCategoryWindowsForEmployeeDays удаляет категорийные окна сотрудника
// на перечисленные дни недели. Каскад при удалении дня из персональных часов.
func (r *Repository) DeleteCategoryWindowsForEmployeeDays(ctx context.Context, employeeID int64, days []int) error {
	if len(days) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("employee_category_working_hours").
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"day_of_week": days}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteCategoryWindowsForEmployeeDays - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteCategoryWindowsForEmployeeDays - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteCategoryWindowsForDays удаляет категорийные окна всех сотрудников компании
// на перечисленные дни недели. Каскад при удалении дня из часов компании.
func (r *Repository) DeleteCategoryWindowsForDays(ctx context.Context, companyID int64, days []int) error {
	if len(days) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("employee_category_working_hours").
		Where(squirrel.Eq{"day_of_week": days}).
		Where(squirrel.Expr("employee_id IN (SELECT id FROM employees WHERE company_id = ?)", companyID)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteCategoryWindowsForDays - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteCategoryWindowsForDays - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

func scanCategoryWindows(rows *sql.Rows, op string) ([]domain.EmployeeCategoryWorkingHour, error) {
	hours := make([]domain.EmployeeCategoryWorkingHour, 0)
	for rows.Next() {
		var h domain.EmployeeCategoryWorkingHour
		if err := rows.Scan(&h.ID, &h.EmployeeID, &h.CategoryID, &h.DayOfWeek, &h.StartTime, &h.EndTime); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		hours = append(hours, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return hours, nil
}

// isUniqueViolation проверяет нарушение уникального ограничения PostgreSQL
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
