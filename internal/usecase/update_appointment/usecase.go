package update_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	employeeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/employee"
)

// UseCase use case для изменения записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	employeeRepo    EmployeeRepository
	companyRepo     CompanyRepository
	catalogRepo     CatalogRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	employeeRepo EmployeeRepository,
	companyRepo CompanyRepository,
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		employeeRepo:    employeeRepo,
		companyRepo:     companyRepo,
		catalogRepo:     catalogRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case изменения записи.
// Прогоняет полную валидацию новых данных, после чего в одной транзакции
// обновляет запись и полностью заменяет связи с услугами.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%d, employee=%d, date=%s, services=%v",
		req.ID, req.EmployeeID, req.Date.Format("2006-01-02 15:04"), req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и отсекаем прошедшие даты
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("UpdateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем изменяемую запись
	existing, err := uc.appointmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateAppointment: appointment id=%d not found", req.ID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// Изменять можно только записи в ожидании
	if !existing.IsPending() {
		uc.logger.Warn("UpdateAppointment: appointment id=%d has status %s", req.ID, existing.Status)
		return nil, ErrInvalidState
	}

	// 4. Получаем сотрудника
	employee, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("UpdateAppointment: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// Неактивный сотрудник недоступен для записи
	if !employee.IsActive {
		uc.logger.Warn("UpdateAppointment: employee id=%d is not active", req.EmployeeID)
		return nil, ErrEmployeeNotFound
	}

	// 5. Получаем компанию вместе с её рабочими часами
	company, err := uc.companyRepo.GetByID(ctx, employee.CompanyID)
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to get company id=%d: %v", employee.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 6. Получаем услуги и считаем агрегаты
	services, err := uc.catalogRepo.GetServicesByIDs(ctx, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	if len(services) != len(uniqueIDs(req.ServiceIDs)) {
		uc.logger.Warn("UpdateAppointment: some services not found: requested=%v", req.ServiceIDs)
		return nil, ErrServiceNotFound
	}

	// Услуги другой компании недоступны для записи к этому сотруднику
	for _, svc := range services {
		if svc.CompanyID != employee.CompanyID {
			uc.logger.Warn("UpdateAppointment: service id=%d belongs to company=%d, employee to company=%d",
				svc.ID, svc.CompanyID, employee.CompanyID)
			return nil, ErrServiceNotFound
		}
	}

	subTotal := domain.SumPrice(services)
	totalDuration := domain.SumDuration(services)
	categoryIDs := domain.CategoryIDs(services)

	// 7. Применяем правила скидки
	discount, err := resolveDiscount(req.Discount, req.Role, subTotal)
	if err != nil {
		uc.logger.Warn("UpdateAppointment: discount validation failed: %v", err)
		return nil, err
	}

	step := employee.SlotStep(company)

	var result *domain.Appointment

	// 8. Проверка доступности и обновление в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Собираем расписание и вычисляем рабочее окно на новый день
		employeeWindows, err := uc.scheduleRepo.ListEmployeeWindows(txCtx, req.EmployeeID)
		if err != nil {
			uc.logger.Error("UpdateAppointment: failed to get employee windows: %v", err)
			return fmt.Errorf("%w: failed to get employee working hours: %v", ErrInternal, err)
		}

		categoryWindows, err := uc.scheduleRepo.ListCategoryWindows(txCtx, req.EmployeeID, nil)
		if err != nil {
			uc.logger.Error("UpdateAppointment: failed to get category windows: %v", err)
			return fmt.Errorf("%w: failed to get category working hours: %v", ErrInternal, err)
		}

		schedule := domain.Schedule{
			CompanyWindows:  company.WorkingHours,
			EmployeeWindows: employeeWindows,
			CategoryWindows: categoryWindows,
		}

		window, working := schedule.ResolveWindow(categoryIDs, int(req.Date.Weekday()))
		if !working {
			uc.logger.Warn("UpdateAppointment: employee id=%d does not work on %s",
				req.EmployeeID, req.Date.Format(domain.DateFormat))
			return ErrOutOfHours
		}

		// 8.2. Проверяем, что время записи внутри окна
		if err := validateWithinWindow(req.Date, window); err != nil {
			uc.logger.Warn("UpdateAppointment: time %s is outside window %s-%s",
				req.Date.Format(domain.TimeFormat), window.StartTime, window.EndTime)
			return err
		}

		// 8.3. Получаем PENDING записи сотрудника с блокировкой (FOR UPDATE)
		from := req.Date.AddDate(0, 0, -1)
		to := req.Date.AddDate(0, 0, 2)
		appointments, err := uc.appointmentRepo.ListForEmployeeBetween(txCtx, req.EmployeeID, from, to, false)
		if err != nil {
			uc.logger.Error("UpdateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 8.4. Проверяем доступность слота, исключая саму изменяемую запись
		if !isSlotAvailable(req.Date, now, appointments, step, req.ID) {
			uc.logger.Warn("UpdateAppointment: slot %s is not available for employee id=%d",
				req.Date.Format("2006-01-02 15:04"), req.EmployeeID)
			return ErrSlotUnavailable
		}

		// 8.5. Обновляем запись и полностью заменяем связи услуг
		updated := &domain.Appointment{
			ID:                   existing.ID,
			CompanyID:            employee.CompanyID,
			EmployeeID:           req.EmployeeID,
			ClientID:             req.ClientID,
			Date:                 req.Date,
			Status:               existing.Status,
			IsBlock:              existing.IsBlock,
			TotalDurationMinutes: totalDuration,
			SubTotalPrice:        subTotal,
			Discount:             discount,
			TotalPrice:           subTotal - discount,
			ServiceIDs:           req.ServiceIDs,
			CreatedAt:            existing.CreatedAt,
		}

		if err := uc.appointmentRepo.Update(txCtx, updated); err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("UpdateAppointment: concurrent insert took slot %s for employee id=%d",
					req.Date.Format("2006-01-02 15:04"), req.EmployeeID)
				return ErrSlotUnavailable
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: successfully updated appointment id=%d", result.ID)

	return toResponse(result), nil
}

// uniqueIDs убирает дубликаты из списка ID, сохраняя порядок
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
