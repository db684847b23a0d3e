package create_block

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type fakeAppointmentRepo struct {
	existing   []*domain.Appointment
	created    *domain.Appointment
	nextID     int64
	createCall int
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.createCall++
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// monday 2025-10-13 — понедельник
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func newTestUseCase(repo *fakeAppointmentRepo) *UseCase {
	company := &domain.Company{ID: 1, IntervalBetweenAppointments: 60}
	employee := &domain.Employee{ID: 10, CompanyID: 1, IsActive: true}

	return NewUseCase(
		repo,
		&fakeEmployeeRepo{employee: employee},
		&fakeCompanyRepo{company: company},
		fakeTxManager{},
		nopLogger{},
	)
}

func TestExecute_CreatesBlock(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		StartDate:  monday.Add(10 * time.Hour),
		EndDate:    monday.Add(12 * time.Hour),
	})
	require.NoError(t, err)

	assert.True(t, resp.IsBlock)
	assert.Equal(t, 120, resp.TotalDurationMinutes)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, int64(1), resp.CompanyID)
	require.NotNil(t, repo.created)
	assert.Nil(t, repo.created.ClientID)
}

func TestExecute_ConflictWithOffGridAppointment(t *testing.T) {
	// Запись 10:30-10:50 лежит между узлами часовой сетки, но блокировка
	// 10:00-12:00 всё равно должна её увидеть
	repo := &fakeAppointmentRepo{
		existing: []*domain.Appointment{
			{
				ID:                   100,
				EmployeeID:           10,
				Date:                 monday.Add(10*time.Hour + 30*time.Minute),
				Status:               domain.StatusPending,
				TotalDurationMinutes: 20,
			},
		},
	}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		StartDate:  monday.Add(10 * time.Hour),
		EndDate:    monday.Add(12 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Zero(t, repo.createCall)
}

func TestExecute_BackToBackAllowed(t *testing.T) {
	// Записи, заканчивающиеся ровно в начале блокировки и начинающиеся
	// ровно в её конце, не конфликтуют
	repo := &fakeAppointmentRepo{
		existing: []*domain.Appointment{
			{
				ID:                   100,
				EmployeeID:           10,
				Date:                 monday.Add(9 * time.Hour),
				Status:               domain.StatusPending,
				TotalDurationMinutes: 60,
			},
			{
				ID:                   101,
				EmployeeID:           10,
				Date:                 monday.Add(12 * time.Hour),
				Status:               domain.StatusPending,
				TotalDurationMinutes: 60,
			},
		},
	}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		StartDate:  monday.Add(10 * time.Hour),
		EndDate:    monday.Add(12 * time.Hour),
	})
	assert.NoError(t, err)
}

func TestExecute_ConflictWithExistingBlock(t *testing.T) {
	// Существующая блокировка без длительности использует шаг сетки
	repo := &fakeAppointmentRepo{
		existing: []*domain.Appointment{
			{
				ID:         100,
				EmployeeID: 10,
				Date:       monday.Add(11 * time.Hour),
				Status:     domain.StatusPending,
				IsBlock:    true,
			},
		},
	}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		StartDate:  monday.Add(10 * time.Hour),
		EndDate:    monday.Add(12 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_InvalidRange(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		StartDate:  monday.Add(12 * time.Hour),
		EndDate:    monday.Add(10 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_InactiveEmployee(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := NewUseCase(
		repo,
		&fakeEmployeeRepo{employee: &domain.Employee{ID: 10, CompanyID: 1, IsActive: false}},
		&fakeCompanyRepo{company: &domain.Company{ID: 1, IntervalBetweenAppointments: 60}},
		fakeTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		EmployeeID: 10,
		StartDate:  monday.Add(10 * time.Hour),
		EndDate:    monday.Add(12 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.Zero(t, repo.createCall)
}
