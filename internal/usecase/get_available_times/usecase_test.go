package get_available_times

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	employeeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/employee"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) ListForEmployeeBetween(_ context.Context, _ int64, _, _ time.Time, _ bool) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeEmployeeRepo struct {
	employee *domain.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, _ int64) (*domain.Employee, error) {
	if f.employee == nil {
		return nil, employeeRepo.ErrEmployeeNotFound
	}
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

type fakeScheduleRepo struct {
	employeeWindows []domain.DailyWindow
	categoryWindows []domain.EmployeeCategoryWorkingHour
}

func (f *fakeScheduleRepo) ListEmployeeWindows(_ context.Context, _ int64) ([]domain.DailyWindow, error) {
	return f.employeeWindows, nil
}

func (f *fakeScheduleRepo) ListCategoryWindows(_ context.Context, _ int64, _ *int64) ([]domain.EmployeeCategoryWorkingHour, error) {
	return f.categoryWindows, nil
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

func newTestUseCase(
	appts []*domain.Appointment,
	services []*domain.Service,
	scheduleRepo *fakeScheduleRepo,
	now time.Time,
) *UseCase {
	company := &domain.Company{
		ID:                          1,
		IntervalBetweenAppointments: 60,
		WorkingHours: []domain.DailyWindow{
			{DayOfWeek: 1, StartTime: "08:00", EndTime: "17:00"},
		},
	}
	employee := &domain.Employee{ID: 10, CompanyID: 1, IsActive: true}

	uc := NewUseCase(
		&fakeAppointmentRepo{appointments: appts},
		&fakeEmployeeRepo{employee: employee},
		&fakeCompanyRepo{company: company},
		&fakeCatalogRepo{services: services},
		scheduleRepo,
		nopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func TestExecute_ExcludesConflictingSlots(t *testing.T) {
	existing := &domain.Appointment{
		ID:                   100,
		EmployeeID:           10,
		Date:                 monday.Add(9 * time.Hour),
		Status:               domain.StatusPending,
		TotalDurationMinutes: 60,
	}

	uc := newTestUseCase([]*domain.Appointment{existing}, nil, &fakeScheduleRepo{}, monday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 10,
		Date:       monday,
	})
	require.NoError(t, err)

	assert.NotContains(t, resp.Slots, types.TimeString("09:00"))
	assert.Contains(t, resp.Slots, types.TimeString("08:00"))
	// Запись "впритык" после существующей разрешена
	assert.Contains(t, resp.Slots, types.TimeString("10:00"))

	// Сетка 08:00..17:00 включительно с шагом 60 даёт 10 кандидатов, один занят
	assert.Len(t, resp.Slots, 9)
	assert.Equal(t, types.TimeString("17:00"), resp.Slots[len(resp.Slots)-1])
}

func TestExecute_Idempotent(t *testing.T) {
	existing := &domain.Appointment{
		ID:                   100,
		EmployeeID:           10,
		Date:                 monday.Add(9 * time.Hour),
		Status:               domain.StatusPending,
		TotalDurationMinutes: 60,
	}

	uc := newTestUseCase([]*domain.Appointment{existing}, nil, &fakeScheduleRepo{}, monday.AddDate(0, 0, -7))
	req := &Request{UserID: 1, EmployeeID: 10, Date: monday}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_RejectsPastSlotsSameDay(t *testing.T) {
	// Сейчас понедельник 12:30, утренние слоты уже прошли
	now := monday.Add(12*time.Hour + 30*time.Minute)

	uc := newTestUseCase(nil, nil, &fakeScheduleRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, EmployeeID: 10, Date: monday})
	require.NoError(t, err)

	assert.NotContains(t, resp.Slots, types.TimeString("08:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("12:00"))
	assert.Contains(t, resp.Slots, types.TimeString("13:00"))
}

func TestExecute_NonWorkingDayReturnsEmptySlots(t *testing.T) {
	uc := newTestUseCase(nil, nil, &fakeScheduleRepo{}, monday.AddDate(0, 0, -7))

	// Воскресенье: у компании нет окна
	sunday := monday.AddDate(0, 0, -1)
	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, EmployeeID: 10, Date: sunday})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
}

func TestExecute_EmployeeWindowsOverrideCompany(t *testing.T) {
	scheduleRepo := &fakeScheduleRepo{
		employeeWindows: []domain.DailyWindow{
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "12:00"},
		},
	}

	uc := newTestUseCase(nil, nil, scheduleRepo, monday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, EmployeeID: 10, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"10:00", "11:00", "12:00"}, resp.Slots)
}

func TestExecute_CategoryWindowsAuthoritative(t *testing.T) {
	scheduleRepo := &fakeScheduleRepo{
		employeeWindows: []domain.DailyWindow{
			{DayOfWeek: 1, StartTime: "08:00", EndTime: "17:00"},
		},
		categoryWindows: []domain.EmployeeCategoryWorkingHour{
			{EmployeeID: 10, CategoryID: 5, DayOfWeek: 1, StartTime: "14:00", EndTime: "16:00"},
		},
	}
	services := []*domain.Service{
		{ID: 7, CompanyID: 1, CategoryID: 5, DurationMinutes: 60, Price: 100, IsActive: true},
	}

	uc := newTestUseCase(nil, services, scheduleRepo, monday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 10,
		Date:       monday,
		ServiceIDs: []int64{7},
	})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"14:00", "15:00", "16:00"}, resp.Slots)
}

func TestExecute_EmployeeNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeAppointmentRepo{},
		&fakeEmployeeRepo{},
		&fakeCompanyRepo{},
		&fakeCatalogRepo{},
		&fakeScheduleRepo{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{UserID: 1, EmployeeID: 99, Date: monday})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	// Каталог возвращает меньше услуг, чем запрошено
	uc := newTestUseCase(nil, nil, &fakeScheduleRepo{}, monday.AddDate(0, 0, -7))

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 10,
		Date:       monday,
		ServiceIDs: []int64{7},
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ForeignCompanyService(t *testing.T) {
	// Услуга существует, но принадлежит другой компании
	foreign := []*domain.Service{
		{ID: 7, CompanyID: 99, CategoryID: 5, DurationMinutes: 60, Price: 100, IsActive: true},
	}
	uc := newTestUseCase(nil, foreign, &fakeScheduleRepo{}, monday.AddDate(0, 0, -7))

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     1,
		EmployeeID: 10,
		Date:       monday,
		ServiceIDs: []int64{7},
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveEmployee(t *testing.T) {
	company := &domain.Company{
		ID:                          1,
		IntervalBetweenAppointments: 60,
		WorkingHours: []domain.DailyWindow{
			{DayOfWeek: 1, StartTime: "08:00", EndTime: "17:00"},
		},
	}
	uc := NewUseCase(
		&fakeAppointmentRepo{},
		&fakeEmployeeRepo{employee: &domain.Employee{ID: 10, CompanyID: 1, IsActive: false}},
		&fakeCompanyRepo{company: company},
		&fakeCatalogRepo{},
		&fakeScheduleRepo{},
		nopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: monday.AddDate(0, 0, -7)}

	_, err := uc.Execute(context.Background(), &Request{UserID: 1, EmployeeID: 10, Date: monday})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}
