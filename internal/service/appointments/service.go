package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	employeeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/employee"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с записями: смена статусов, удаление, выборки
type Service struct {
	appointmentRepo AppointmentRepository
	employeeRepo    EmployeeRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	employeeRepo EmployeeRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		employeeRepo:    employeeRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// MarkAsCompleted переводит запись из PENDING в COMPLETED.
// Вызывающий должен принадлежать компании сотрудника записи.
func (s *Service) MarkAsCompleted(ctx context.Context, id int64, callerCompanyID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("MarkAsCompleted: appointment id=%d, company=%d", id, callerCompanyID)
	return s.transition(ctx, id, callerCompanyID, domain.StatusCompleted)
}

// MarkAsCanceled переводит запись из PENDING в CANCELLED.
// Вызывающий должен принадлежать компании сотрудника записи.
func (s *Service) MarkAsCanceled(ctx context.Context, id int64, callerCompanyID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("MarkAsCanceled: appointment id=%d, company=%d", id, callerCompanyID)
	return s.transition(ctx, id, callerCompanyID, domain.StatusCancelled)
}

// Delete жёстко удаляет запись вместе со связями услуг.
// Административная операция, вызывающий должен принадлежать компании записи.
func (s *Service) Delete(ctx context.Context, id int64, callerCompanyID int64) error {
	s.logger.Info("Delete: appointment id=%d, company=%d", id, callerCompanyID)

	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, appt, callerCompanyID); err != nil {
		return err
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted appointment id=%d", id)
	return nil
}

// ListPending получает все записи в статусе PENDING
func (s *Service) ListPending(ctx context.Context) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListPending: fetching pending appointments")

	appts, err := s.appointmentRepo.ListPending(ctx)
	if err != nil {
		s.logger.Error("ListPending: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPending - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPending: fetched %d appointments", len(appts))
	return models.FromDomainAppointmentList(appts), nil
}

// ListByCompany получает все записи компании
func (s *Service) ListByCompany(ctx context.Context, companyID int64) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByCompany: fetching appointments for company=%d", companyID)

	if companyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	appts, err := s.appointmentRepo.ListByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("ListByCompany: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: ListByCompany - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByCompany: fetched %d appointments for company=%d", len(appts), companyID)
	return models.FromDomainAppointmentList(appts), nil
}

// ListByClient получает записи клиента в рамках компании
func (s *Service) ListByClient(ctx context.Context, clientID, companyID int64) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByClient: fetching appointments for client=%d, company=%d", clientID, companyID)

	if clientID <= 0 || companyID <= 0 {
		return nil, fmt.Errorf("%w: clientID and companyID must be positive", ErrInvalidInput)
	}

	appts, err := s.appointmentRepo.ListByClient(ctx, clientID, companyID)
	if err != nil {
		s.logger.Error("ListByClient: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: ListByClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByClient: fetched %d appointments for client=%d", len(appts), clientID)
	return models.FromDomainAppointmentList(appts), nil
}

// transition выполняет смену статуса записи с проверкой владения и состояния
func (s *Service) transition(ctx context.Context, id, callerCompanyID int64, status domain.AppointmentStatus) (*models.AppointmentResponse, error) {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, appt, callerCompanyID); err != nil {
		return nil, err
	}

	// Переходы разрешены только из PENDING
	if !appt.CanTransition() {
		s.logger.Warn("transition: appointment id=%d has terminal status %s", id, appt.Status)
		return nil, ErrInvalidState
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("transition: failed to update status for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
	}

	appt.Status = status

	s.logger.Info("transition: appointment id=%d moved to %s", id, status)
	return models.FromDomainAppointment(appt), nil
}

// getAppointment получает запись, транслируя ошибку репозитория
func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("getAppointment: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("getAppointment: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getAppointment - repository error: %v", ErrInternal, err)
	}
	return appt, nil
}

// authorize проверяет, что компания вызывающего совпадает с компанией
// сотрудника записи
func (s *Service) authorize(ctx context.Context, appt *domain.Appointment, callerCompanyID int64) error {
	employee, err := s.employeeRepo.GetByID(ctx, appt.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("authorize: employee id=%d not found for appointment id=%d", appt.EmployeeID, appt.ID)
			return ErrEmployeeNotFound
		}
		s.logger.Error("authorize: repository error for employee id=%d: %v", appt.EmployeeID, err)
		return fmt.Errorf("%w: authorize - repository error: %v", ErrInternal, err)
	}

	if employee.CompanyID != callerCompanyID {
		s.logger.Warn("authorize: company=%d does not own appointment id=%d (owner=%d)",
			callerCompanyID, appt.ID, employee.CompanyID)
		return ErrAccessDenied
	}

	return nil
}
