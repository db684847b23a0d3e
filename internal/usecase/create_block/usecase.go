package create_block

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	employeeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/employee"
)

// UseCase use case для блокировки времени сотрудника владельцем.
// Блокировка хранится как запись с IsBlock=true: без клиента, без услуг,
// с нулевыми денежными полями и длительностью, равной размеру интервала.
type UseCase struct {
	appointmentRepo AppointmentRepository
	employeeRepo    EmployeeRepository
	companyRepo     CompanyRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	employeeRepo EmployeeRepository,
	companyRepo CompanyRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		employeeRepo:    employeeRepo,
		companyRepo:     companyRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания блокировки.
// Интервал блокировки проверяется на конфликты с существующими PENDING
// записями и блокировками так же, как обычная запись.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBlock: employee=%d, start=%s, end=%s",
		req.EmployeeID, req.StartDate.Format("2006-01-02 15:04"), req.EndDate.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBlock: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем сотрудника
	employee, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateBlock: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("CreateBlock: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// Неактивного сотрудника блокировать нечего
	if !employee.IsActive {
		uc.logger.Warn("CreateBlock: employee id=%d is not active", req.EmployeeID)
		return nil, ErrEmployeeNotFound
	}

	// 3. Получаем компанию для вычисления шага сетки
	company, err := uc.companyRepo.GetByID(ctx, employee.CompanyID)
	if err != nil {
		uc.logger.Error("CreateBlock: failed to get company id=%d: %v", employee.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	step := employee.SlotStep(company)
	durationMinutes := int(req.EndDate.Sub(req.StartDate) / time.Minute)

	var result *domain.Appointment

	// 4. Проверка доступности и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем PENDING записи сотрудника с блокировкой (FOR UPDATE)
		from := req.StartDate.AddDate(0, 0, -1)
		to := req.EndDate.AddDate(0, 0, 2)
		appointments, err := uc.appointmentRepo.ListForEmployeeBetween(txCtx, req.EmployeeID, from, to, false)
		if err != nil {
			uc.logger.Error("CreateBlock: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 4.2. Проверяем блокируемый интервал на пересечения с записями
		if conflict := findConflict(req.StartDate, durationMinutes, step, appointments); conflict {
			uc.logger.Warn("CreateBlock: interval %s-%s conflicts with existing appointments for employee id=%d",
				req.StartDate.Format("15:04"), req.EndDate.Format("15:04"), req.EmployeeID)
			return ErrSlotUnavailable
		}

		// 4.3. Создаем блокировку
		block := &domain.Appointment{
			CompanyID:            employee.CompanyID,
			EmployeeID:           req.EmployeeID,
			ClientID:             nil,
			Date:                 req.StartDate,
			Status:               domain.StatusPending,
			IsBlock:              true,
			TotalDurationMinutes: durationMinutes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, block)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBlock: concurrent insert took slot %s for employee id=%d",
					req.StartDate.Format("2006-01-02 15:04"), req.EmployeeID)
				return ErrSlotUnavailable
			}
			uc.logger.Error("CreateBlock: failed to create block: %v", err)
			return fmt.Errorf("%w: failed to create block: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBlock: successfully created block id=%d", result.ID)

	return toResponse(result), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if !req.EndDate.After(req.StartDate) {
		return ErrInvalidRange
	}

	return nil
}

// findConflict проверяет блокируемый интервал на пересечение с существующими
// записями. Пересечение строгое: записи "впритык" до и после блокировки
// разрешены. fallbackMinutes подставляется записям без длительности.
func findConflict(start time.Time, durationMinutes, fallbackMinutes int, appointments []*domain.Appointment) bool {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	for _, appt := range appointments {
		if appt.Date.Before(end) && appt.End(fallbackMinutes).After(start) {
			return true
		}
	}
	return false
}
