package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

type fakeAppointmentRepo struct {
	existing   []*domain.Appointment
	created    *domain.Appointment
	createErr  error
	nextID     int64
	createCall int
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.createCall++
	if f.createErr != nil {
		return nil, f.createErr
	}

	result := *appt
	f.nextID++
	result.ID = f.nextID
	result.CreatedAt = time.Now()
	result.UpdatedAt = result.CreatedAt
	f.created = &result
	return &result, nil
}

func (f *fakeAppointmentRepo) ListForEmployeeBetween(_ context.Context, _ int64, _, _ time.Time, _ bool) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakeEmployeeRepo struct {
	employee *domain.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, _ int64) (*domain.Employee, error) {
	return f.employee, nil
}

type fakeCompanyRepo struct {
	company *domain.Company
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, _ int64) (*domain.Company, error) {
	return f.company, nil
}

type fakeCatalogRepo struct {
	services []*domain.Service
}

func (f *fakeCatalogRepo) GetServicesByIDs(_ context.Context, _ []int64) ([]*domain.Service, error) {
	return f.services, nil
}

type fakeScheduleRepo struct{}

func (fakeScheduleRepo) ListEmployeeWindows(_ context.Context, _ int64) ([]domain.DailyWindow, error) {
	return nil, nil
}

func (fakeScheduleRepo) ListCategoryWindows(_ context.Context, _ int64, _ *int64) ([]domain.EmployeeCategoryWorkingHour, error) {
	return nil, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// monday 2025-10-13 — понедельник
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func defaultServices() []*domain.Service {
	return []*domain.Service{
		{ID: 7, CompanyID: 1, CategoryID: 5, DurationMinutes: 60, Price: 100, IsActive: true},
	}
}

func newTestUseCase(repo *fakeAppointmentRepo, services []*domain.Service) *UseCase {
	company := &domain.Company{
		ID:                          1,
		IntervalBetweenAppointments: 60,
		WorkingHours: []domain.DailyWindow{
			{DayOfWeek: 1, StartTime: "08:00", EndTime: "17:00"},
		},
	}
	employee := &domain.Employee{ID: 10, CompanyID: 1, IsActive: true}

	uc := NewUseCase(
		repo,
		&fakeEmployeeRepo{employee: employee},
		&fakeCompanyRepo{company: company},
		&fakeCatalogRepo{services: services},
		fakeScheduleRepo{},
		fakeTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: monday.AddDate(0, 0, -7)}
	return uc
}

func TestExecute_CreatesPendingAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, defaultServices())

	clientID := int64(42)
	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:   &clientID,
		EmployeeID: 10,
		Date:       monday.Add(10 * time.Hour),
		ServiceIDs: []int64{7},
		Role:       domain.RoleClient,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, int64(1), resp.CompanyID)
	assert.Equal(t, 60, resp.TotalDurationMinutes)
	assert.Equal(t, 100.0, resp.SubTotalPrice)
	assert.Equal(t, 0.0, resp.Discount)
	assert.Equal(t, 100.0, resp.TotalPrice)
	require.NotNil(t, resp.ClientID)
	assert.Equal(t, clientID, *resp.ClientID)
}

func TestExecute_DiscountAllowedForEmployee(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, defaultServices())

	resp, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		Date:       monday.Add(10 * time.Hour),
		ServiceIDs: []int64{7},
		Discount:   50,
		Role:       domain.RoleEmployee,
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, resp.Discount)
	assert.Equal(t, 50.0, resp.TotalPrice)
}

func TestExecute_DiscountSilentlyDroppedForClient(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, defaultServices())

	resp, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		Date:       monday.Add(10 * time.Hour),
		ServiceIDs: []int64{7},
		Discount:   50,
		Role:       domain.RoleClient,
	})
	require.NoError(t, err)

	// Скидка непривилегированной роли обнуляется без ошибки
	assert.Equal(t, 0.0, resp.Discount)
	assert.Equal(t, 100.0, resp.TotalPrice)
}

func TestExecute_DiscountExceedsSubtotal(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, defaultServices())

	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		Date:       monday.Add(10 * time.Hour),
		ServiceIDs: []int64{7},
		Discount:   150,
		Role:       domain.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrInvalidDiscount)
	assert.Zero(t, repo.createCall)
}

func TestExecute_NegativeDiscount(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, defaultServices())

	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		Date:       monday.Add(10 * time.Hour),
		ServiceIDs: []int64{7},
		Discount:   -10,
		Role:       domain.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestExecute_SlotConflict(t *testing.T) {
	repo := &fakeAppointmentRepo{
		existing: []*domain.Appointment{
			{
				ID:                   100,
				EmployeeID:           10,
				Date:                 monday.Add(10 * time.Hour),
				Status:               domain.StatusPending,
				TotalDurationMinutes: 60,
			},
		},
	}
	uc := newTestUseCase(repo, defaultServices())

	// Совпадение с началом существующей записи
	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		Date:       monday.Add(10 * time.Hour),
		ServiceIDs: []int64{7},
		Role:       domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// Строго внутри интервала существующей записи
	_, err = uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		Date:       monday.Add(10*time.Hour + 30*time.Minute),
		ServiceIDs: []int64{7},
		Role:       domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// Вплотную после окончания существующей записи — разрешено
	_, err = uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		Date:       monday.Add(11 * time.Hour),
		ServiceIDs: []int64{7},
		Role:       domain.RoleClient,
	})
	assert.NoError(t, err)
}

func TestExecute_ConcurrentInsertMapsToSlotUnavailable(t *testing.T) {
	repo := &fakeAppointmentRepo{createErr: appointmentRepo.ErrSlotTaken}
	uc := newTestUseCase(repo, defaultServices())

	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		Date:       monday.Add(10 * time.Hour),
		ServiceIDs: []int64{7},
		Role:       domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_OutOfHours(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, defaultServices())

	// 18:00 за пределами окна 08:00-17:00
	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		Date:       monday.Add(18 * time.Hour),
		ServiceIDs: []int64{7},
		Role:       domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrOutOfHours)

	// Воскресенье: окна нет вовсе
	_, err = uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		Date:       monday.AddDate(0, 0, 6).Add(10 * time.Hour),
		ServiceIDs: []int64{7},
		Role:       domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrOutOfHours)
}

func TestExecute_PastDateRejected(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, defaultServices())
	uc.timeProvider = &fakeTimeProvider{now: monday.AddDate(0, 0, 7)}

	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		Date:       monday.Add(10 * time.Hour),
		ServiceIDs: []int64{7},
		Role:       domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ValidationErrors(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, defaultServices())

	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		Date:       monday.Add(10 * time.Hour),
		Role:       domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		EmployeeID: -1,
		Date:       monday.Add(10 * time.Hour),
		ServiceIDs: []int64{7},
		Role:       domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		Date:       monday.Add(10 * time.Hour),
		ServiceIDs: []int64{7},
		Role:       domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ForeignCompanyService(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	foreign := []*domain.Service{
		{ID: 7, CompanyID: 99, CategoryID: 5, DurationMinutes: 60, Price: 100, IsActive: true},
	}
	uc := newTestUseCase(repo, foreign)

	// Услуга существует, но принадлежит другой компании
	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		Date:       monday.Add(10 * time.Hour),
		ServiceIDs: []int64{7},
		Role:       domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Zero(t, repo.createCall)
}

func TestExecute_InactiveEmployee(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	company := &domain.Company{
		ID:                          1,
		IntervalBetweenAppointments: 60,
		WorkingHours: []domain.DailyWindow{
			{DayOfWeek: 1, StartTime: "08:00", EndTime: "17:00"},
		},
	}
	uc := NewUseCase(
		repo,
		&fakeEmployeeRepo{employee: &domain.Employee{ID: 10, CompanyID: 1, IsActive: false}},
		&fakeCompanyRepo{company: company},
		&fakeCatalogRepo{services: defaultServices()},
		fakeScheduleRepo{},
		fakeTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: monday.AddDate(0, 0, -7)}

	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		Date:       monday.Add(10 * time.Hour),
		ServiceIDs: []int64{7},
		Role:       domain.RoleClient,
	})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.Zero(t, repo.createCall)
}
