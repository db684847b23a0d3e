package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	employeeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/employee"
)

type fakeAppointmentRepo struct {
	byID    map[int64]*domain.Appointment
	deleted []int64
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	clone := *appt
	return &clone, nil
}

func (f *fakeAppointmentRepo) ListPending(_ context.Context) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, a := range f.byID {
		if a.Status == domain.StatusPending {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepo) ListByCompany(_ context.Context, companyID int64) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, a := range f.byID {
		if a.CompanyID == companyID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepo) ListByClient(_ context.Context, clientID, companyID int64) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, a := range f.byID {
		if a.CompanyID == companyID && a.ClientID != nil && *a.ClientID == clientID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	appt, ok := f.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeEmployeeRepo struct {
	employees map[int64]*domain.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, employeeRepo.ErrEmployeeNotFound
	}
	return e, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeAppointmentRepo) {
	clientID := int64(42)
	repo := &fakeAppointmentRepo{
		byID: map[int64]*domain.Appointment{
			1: {
				ID:         1,
				CompanyID:  1,
				EmployeeID: 10,
				ClientID:   &clientID,
				Date:       time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC),
				Status:     domain.StatusPending,
			},
		},
	}
	employees := &fakeEmployeeRepo{
		employees: map[int64]*domain.Employee{
			10: {ID: 10, CompanyID: 1, IsActive: true},
		},
	}
	return NewService(repo, employees, nopLogger{}), repo
}

func TestMarkAsCompleted(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.MarkAsCompleted(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, domain.StatusCompleted, repo.byID[1].Status)
}

func TestMarkAsCompleted_Twice(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.MarkAsCompleted(context.Background(), 1, 1)
	require.NoError(t, err)

	// Повторный переход из терминального статуса запрещён
	_, err = svc.MarkAsCompleted(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestMarkAsCanceled_AfterComplete(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.MarkAsCompleted(context.Background(), 1, 1)
	require.NoError(t, err)

	_, err = svc.MarkAsCanceled(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestTransition_WrongCompany(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.MarkAsCompleted(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusPending, repo.byID[1].Status)
}

func TestTransition_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.MarkAsCompleted(context.Background(), 777, 1)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService()

	require.NoError(t, svc.Delete(context.Background(), 1, 1))
	assert.Equal(t, []int64{1}, repo.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1, 1), ErrAppointmentNotFound)
}

func TestDelete_WrongCompany(t *testing.T) {
	svc, repo := newTestService()

	assert.ErrorIs(t, svc.Delete(context.Background(), 1, 99), ErrAccessDenied)
	assert.Empty(t, repo.deleted)
}

func TestListByClient(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.ListByClient(context.Background(), 42, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	resp, err = svc.ListByClient(context.Background(), 43, 1)
	require.NoError(t, err)
	assert.Zero(t, resp.Total)

	_, err = svc.ListByClient(context.Background(), 0, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
