package get_available_times

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	employeeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/employee"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case для получения свободного времени сотрудника
type UseCase struct {
	appointmentRepo AppointmentRepository
	employeeRepo    EmployeeRepository
	companyRepo     CompanyRepository
	catalogRepo     CatalogRepository
	scheduleRepo    ScheduleRepository
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
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		employeeRepo:    employeeRepo,
		companyRepo:     companyRepo,
		catalogRepo:     catalogRepo,
		scheduleRepo:    scheduleRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения свободного времени
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableTimes: user=%d, employee=%d, date=%s, services=%v",
		req.UserID, req.EmployeeID, req.Date.Format(domain.DateFormat), req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableTimes: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем сотрудника
	employee, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("GetAvailableTimes: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetAvailableTimes: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// Неактивный сотрудник недоступен для записи
	if !employee.IsActive {
		uc.logger.Warn("GetAvailableTimes: employee id=%d is not active", req.EmployeeID)
		return nil, ErrEmployeeNotFound
	}

	// 4. Получаем компанию вместе с её рабочими часами
	company, err := uc.companyRepo.GetByID(ctx, employee.CompanyID)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get company id=%d: %v", employee.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 5. Получаем услуги и их категории
	var categoryIDs []int64
	if len(req.ServiceIDs) > 0 {
		services, err := uc.catalogRepo.GetServicesByIDs(ctx, req.ServiceIDs)
		if err != nil {
			uc.logger.Error("GetAvailableTimes: failed to get services: %v", err)
			return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
		}
		if len(services) != len(uniqueIDs(req.ServiceIDs)) {
			uc.logger.Warn("GetAvailableTimes: some services not found: requested=%v", req.ServiceIDs)
			return nil, ErrServiceNotFound
		}

		// Услуги другой компании недоступны для записи к этому сотруднику
		for _, svc := range services {
			if svc.CompanyID != employee.CompanyID {
				uc.logger.Warn("GetAvailableTimes: service id=%d belongs to company=%d, employee to company=%d",
					svc.ID, svc.CompanyID, employee.CompanyID)
				return nil, ErrServiceNotFound
			}
		}
		categoryIDs = domain.CategoryIDs(services)
	}

	// 6. Собираем полное расписание сотрудника
	employeeWindows, err := uc.scheduleRepo.ListEmployeeWindows(ctx, req.EmployeeID)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get employee windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get employee working hours: %v", ErrInternal, err)
	}

	categoryWindows, err := uc.scheduleRepo.ListCategoryWindows(ctx, req.EmployeeID, nil)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get category windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get category working hours: %v", ErrInternal, err)
	}

	schedule := domain.Schedule{
		CompanyWindows:  company.WorkingHours,
		EmployeeWindows: employeeWindows,
		CategoryWindows: categoryWindows,
	}

	// 7. Вычисляем действующее рабочее окно на день запроса
	window, working := schedule.ResolveWindow(categoryIDs, int(req.Date.Weekday()))
	if !working {
		uc.logger.Info("GetAvailableTimes: employee id=%d does not work on %s",
			req.EmployeeID, req.Date.Format(domain.DateFormat))
		return &Response{
			Date:       req.Date,
			EmployeeID: req.EmployeeID,
			ServiceIDs: req.ServiceIDs,
			Slots:      []types.TimeString{},
		}, nil
	}

	// 8. Получаем PENDING записи сотрудника в широком окне вокруг даты,
	// чтобы не потерять записи, пересекающие полночь
	from := req.Date.AddDate(0, 0, -1)
	to := req.Date.AddDate(0, 0, 2)
	appointments, err := uc.appointmentRepo.ListForEmployeeBetween(ctx, req.EmployeeID, from, to, req.BlocksOnly)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 9. Генерируем свободные слоты с шагом сотрудника
	step := employee.SlotStep(company)
	slots := generateAvailableSlots(window, step, req.Date, now, appointments)

	uc.logger.Info("GetAvailableTimes: generated %d slots for employee=%d, date=%s",
		len(slots), req.EmployeeID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		EmployeeID: req.EmployeeID,
		ServiceIDs: req.ServiceIDs,
		Slots:      slots,
	}, nil
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
