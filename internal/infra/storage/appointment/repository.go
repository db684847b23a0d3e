package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникального ограничения
const uniqueViolation = "23505"

// appointmentColumns полный набор колонок таблицы appointments
var appointmentColumns = []string{
	"id",
	"company_id",
	"employee_id",
	"client_id",
	"date",
	"status",
	"is_block",
	"total_duration_minutes",
	"sub_total_price",
	"discount",
	"total_price",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись вместе со строками связи appointment_services.
// Обе вставки идут через один executor: если в контексте активная транзакция,
// всё выполняется в ней — частично сохранённая связь услуг невозможна.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"company_id",
			"employee_id",
			"client_id",
			"date",
			"status",
			"is_block",
			"total_duration_minutes",
			"sub_total_price",
			"discount",
			"total_price",
		).
		Values(
			appt.CompanyID,
			appt.EmployeeID,
			appt.ClientID,
			appt.Date,
			appt.Status,
			appt.IsBlock,
			appt.TotalDurationMinutes,
			appt.SubTotalPrice,
			appt.Discount,
			appt.TotalPrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	if err := r.insertServiceLinks(ctx, executor, appt.ID, appt.ServiceIDs); err != nil {
		return nil, err
	}

	return appt, nil
}

// GetByID получает запись по ID вместе со списком её услуг
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("GetByID - %w", err)
	}

	if err := r.loadServiceLinks(ctx, executor, []*domain.Appointment{appt}); err != nil {
		return nil, err
	}

	return appt, nil
}

// ListForEmployeeBetween получает PENDING записи сотрудника в интервале [from, to].
// При blocksOnly=true возвращает только блокировки владельца.
// Внутри активной транзакции строки блокируются через FOR UPDATE — это
// закрывает гонку между проверкой доступности и вставкой записи.
func (r *Repository) ListForEmployeeBetween(ctx context.Context, employeeID int64, from, to time.Time, blocksOnly bool) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC")

	if blocksOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_block": true})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForEmployeeBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForEmployeeBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListPending получает все PENDING записи (без блокировок владельца)
func (r *Repository) ListPending(ctx context.Context) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Eq{"is_block": false}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListByCompany получает все записи компании
func (r *Repository) ListByCompany(ctx context.Context, companyID int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("date DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appts, err := scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadServiceLinks(ctx, executor, appts); err != nil {
		return nil, err
	}

	return appts, nil
}

// ListByClient получает записи клиента в рамках компании
func (r *Repository) ListByClient(ctx context.Context, clientID, companyID int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"client_id": clientID}).
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("date DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appts, err := scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadServiceLinks(ctx, executor, appts); err != nil {
		return nil, err
	}

	return appts, nil
}

// Update обновляет запись и полностью заменяет связи с услугами
// (delete-all-then-insert-new). Вызывается только внутри транзакции.
func (r *Repository) Update(ctx context.Context, appt *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("employee_id", appt.EmployeeID).
		Set("client_id", appt.ClientID).
		Set("date", appt.Date).
		Set("total_duration_minutes", appt.TotalDurationMinutes).
		Set("sub_total_price", appt.SubTotalPrice).
		Set("discount", appt.Discount).
		Set("total_price", appt.TotalPrice).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appt.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("appointment_services").
		Where(squirrel.Eq{"appointment_id": appt.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build delete links query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: Update - delete service links: %v", ErrExecQuery, err)
	}

	return r.insertServiceLinks(ctx, executor, appt.ID, appt.ServiceIDs)
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete физически удаляет запись; строки appointment_services удаляются каскадом FK
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// insertServiceLinks вставляет строки связи запись-услуга
func (r *Repository) insertServiceLinks(ctx context.Context, executor DBExecutor, appointmentID int64, serviceIDs []int64) error {
	if len(serviceIDs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("appointment_services").
		Columns("appointment_id", "service_id")

	for _, serviceID := range serviceIDs {
		insertBuilder = insertBuilder.Values(appointmentID, serviceID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertServiceLinks - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertServiceLinks - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// loadServiceLinks подгружает ID услуг для набора записей одним запросом
func (r *Repository) loadServiceLinks(ctx context.Context, executor DBExecutor, appts []*domain.Appointment) error {
	if len(appts) == 0 {
		return nil
	}

	ids := make([]int64, len(appts))
	byID := make(map[int64]*domain.Appointment, len(appts))
	for i, appt := range appts {
		ids[i] = appt.ID
		byID[appt.ID] = appt
		appt.ServiceIDs = nil
	}

	query, args, err := psqlbuilder.Select("appointment_id", "service_id").
		From("appointment_services").
		Where(squirrel.Eq{"appointment_id": ids}).
		OrderBy("appointment_id ASC, service_id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadServiceLinks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadServiceLinks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var appointmentID, serviceID int64
		if err := rows.Scan(&appointmentID, &serviceID); err != nil {
			return fmt.Errorf("%w: loadServiceLinks - scan row: %v", ErrScanRow, err)
		}
		if appt, ok := byID[appointmentID]; ok {
			appt.ServiceIDs = append(appt.ServiceIDs, serviceID)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadServiceLinks - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// scanAppointment сканирует одну строку результата
func scanAppointment(row *sql.Row) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.CompanyID,
		&appt.EmployeeID,
		&appt.ClientID,
		&appt.Date,
		&appt.Status,
		&appt.IsBlock,
		&appt.TotalDurationMinutes,
		&appt.SubTotalPrice,
		&appt.Discount,
		&appt.TotalPrice,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan appointment: %v", ErrScanRow, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appts := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.CompanyID,
			&appt.EmployeeID,
			&appt.ClientID,
			&appt.Date,
			&appt.Status,
			&appt.IsBlock,
			&appt.TotalDurationMinutes,
			&appt.SubTotalPrice,
			&appt.Discount,
			&appt.TotalPrice,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appts = append(appts, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appts, nil
}

// isUniqueViolation проверяет нарушение уникального ограничения PostgreSQL
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
