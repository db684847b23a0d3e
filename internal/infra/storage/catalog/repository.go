package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"company_id",
	"category_id",
	"name",
	"duration_minutes",
	"price",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога услуг и категорий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServicesByIDs получает активные услуги по списку ID.
// Мягко удалённые услуги (is_active=false) не возвращаются — отсутствие
// услуги в результате трактуется вызывающим кодом как NotFound.
func (r *Repository) GetServicesByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	if len(ids) == 0 {
		return []*domain.Service{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanServices(rows)
}

// GetServiceByID получает активную услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	services, err := r.GetServicesByIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, ErrServiceNotFound
	}
	return services[0], nil
}

// CreateCategory создает категорию услуг компании
func (r *Repository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("categories").
		Columns("company_id", "name").
		Values(category.CompanyID, category.Name).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateCategory - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&category.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateCategory - execute insert: %v", ErrExecQuery, err)
	}

	category.CreatedAt = createdAt.Time
	category.UpdatedAt = updatedAt.Time

	return category, nil
}

// GetCategoryByID получает категорию по ID
func (r *Repository) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"company_id",
		"name",
		"created_at",
		"updated_at",
	).
		From("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCategoryByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Category
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.CompanyID,
		&c.Name,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCategoryByID - scan category: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

// scanServices сканирует результаты запроса в слайс услуг
func scanServices(rows *sql.Rows) ([]*domain.Service, error) {
	services := make([]*domain.Service, 0)

	for rows.Next() {
		var s domain.Service
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.CompanyID,
			&s.CategoryID,
			&s.Name,
			&s.DurationMinutes,
			&s.Price,
			&s.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanServices - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		services = append(services, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
