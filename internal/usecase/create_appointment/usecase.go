package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	employeeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/employee"
)

// UseCase use case для создания записи
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

// Execute выполняет use case создания записи.
// Проверка доступности и вставка выполняются в сериализуемой транзакции,
// чтобы исключить гонку между чтением занятости и записью.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: employee=%d, date=%s, services=%v, role=%s",
		req.EmployeeID, req.Date.Format("2006-01-02 15:04"), req.ServiceIDs, req.Role)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и отсекаем прошедшие даты
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем сотрудника
	employee, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateAppointment: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// Неактивный сотрудник недоступен для записи
	if !employee.IsActive {
		uc.logger.Warn("CreateAppointment: employee id=%d is not active", req.EmployeeID)
		return nil, ErrEmployeeNotFound
	}

	// 4. Получаем компанию вместе с её рабочими часами
	company, err := uc.companyRepo.GetByID(ctx, employee.CompanyID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get company id=%d: %v", employee.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 5. Получаем услуги и считаем агрегаты
	services, err := uc.catalogRepo.GetServicesByIDs(ctx, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	if len(services) != len(uniqueIDs(req.ServiceIDs)) {
		uc.logger.Warn("CreateAppointment: some services not found: requested=%v", req.ServiceIDs)
		return nil, ErrServiceNotFound
	}

	// Услуги другой компании недоступны для записи к этому сотруднику
	for _, svc := range services {
		if svc.CompanyID != employee.CompanyID {
			uc.logger.Warn("CreateAppointment: service id=%d belongs to company=%d, employee to company=%d",
				svc.ID, svc.CompanyID, employee.CompanyID)
			return nil, ErrServiceNotFound
		}
	}

	subTotal := domain.SumPrice(services)
	totalDuration := domain.SumDuration(services)
	categoryIDs := domain.CategoryIDs(services)

	// 6. Применяем правила скидки
	discount, err := resolveDiscount(req.Discount, req.Role, subTotal)
	if err != nil {
		uc.logger.Warn("CreateAppointment: discount validation failed: %v", err)
		return nil, err
	}

	step := employee.SlotStep(company)

	var result *domain.Appointment

	// 7. Проверка доступности и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Собираем расписание и вычисляем рабочее окно на день записи
		employeeWindows, err := uc.scheduleRepo.ListEmployeeWindows(txCtx, req.EmployeeID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get employee windows: %v", err)
			return fmt.Errorf("%w: failed to get employee working hours: %v", ErrInternal, err)
		}

		categoryWindows, err := uc.scheduleRepo.ListCategoryWindows(txCtx, req.EmployeeID, nil)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get category windows: %v", err)
			return fmt.Errorf("%w: failed to get category working hours: %v", ErrInternal, err)
		}

		schedule := domain.Schedule{
			CompanyWindows:  company.WorkingHours,
			EmployeeWindows: employeeWindows,
			CategoryWindows: categoryWindows,
		}

		window, working := schedule.ResolveWindow(categoryIDs, int(req.Date.Weekday()))
		if !working {
			uc.logger.Warn("CreateAppointment: employee id=%d does not work on %s",
				req.EmployeeID, req.Date.Format(domain.DateFormat))
			return ErrOutOfHours
		}

		// 7.2. Проверяем, что время записи внутри окна
		if err := validateWithinWindow(req.Date, window); err != nil {
			uc.logger.Warn("CreateAppointment: time %s is outside window %s-%s",
				req.Date.Format(domain.TimeFormat), window.StartTime, window.EndTime)
			return err
		}

		// 7.3. Получаем PENDING записи сотрудника с блокировкой (FOR UPDATE)
		from := req.Date.AddDate(0, 0, -1)
		to := req.Date.AddDate(0, 0, 2)
		appointments, err := uc.appointmentRepo.ListForEmployeeBetween(txCtx, req.EmployeeID, from, to, false)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 7.4. Проверяем доступность слота
		if !isSlotAvailable(req.Date, now, appointments, step) {
			uc.logger.Warn("CreateAppointment: slot %s is not available for employee id=%d",
				req.Date.Format("2006-01-02 15:04"), req.EmployeeID)
			return ErrSlotUnavailable
		}

		// 7.5. Создаем запись вместе со связями услуг (одна транзакция)
		appt := &domain.Appointment{
			CompanyID:            employee.CompanyID,
			EmployeeID:           req.EmployeeID,
			ClientID:             req.ClientID,
			Date:                 req.Date,
			Status:               domain.StatusPending,
			IsBlock:              false,
			TotalDurationMinutes: totalDuration,
			SubTotalPrice:        subTotal,
			Discount:             discount,
			TotalPrice:           subTotal - discount,
			ServiceIDs:           req.ServiceIDs,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: concurrent insert took slot %s for employee id=%d",
					req.Date.Format("2006-01-02 15:04"), req.EmployeeID)
				return ErrSlotUnavailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

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
