package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	companyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/company"
	employeeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/employee"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Service сервис расписаний: рабочие часы компании, персональные и
// категорийные часы сотрудников и каскадная синхронизация иерархии.
type Service struct {
	companyRepo  CompanyRepository
	employeeRepo EmployeeRepository
	catalogRepo  CatalogRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	companyRepo CompanyRepository,
	employeeRepo EmployeeRepository,
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		companyRepo:  companyRepo,
		employeeRepo: employeeRepo,
		catalogRepo:  catalogRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// UpdateCompanyWorkingHours обновляет рабочие часы компании и каскадно
// синхронизирует зависимые расписания сотрудников: окна на удалённые дни
// удаляются, окна шире нового верхнего уровня подрезаются. Всё выполняется
// в одной транзакции с обновлением верхнего уровня.
func (s *Service) UpdateCompanyWorkingHours(ctx context.Context, req *models.UpdateCompanyWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("UpdateCompanyWorkingHours: company=%d, windows=%d", req.CompanyID, len(req.WorkingHours))

	if req.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	windows, err := models.ToDomainWindows(req.WorkingHours)
	if err != nil {
		s.logger.Warn("UpdateCompanyWorkingHours: invalid windows for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.getCompany(ctx, req.CompanyID); err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Обновляем интервал, если он передан
		if req.IntervalBetweenAppointments != nil {
			if *req.IntervalBetweenAppointments <= 0 {
				return fmt.Errorf("%w: interval must be positive", ErrInvalidInput)
			}
			if err := s.companyRepo.UpdateInterval(txCtx, req.CompanyID, *req.IntervalBetweenAppointments); err != nil {
				s.logger.Error("UpdateCompanyWorkingHours: failed to update interval: %v", err)
				return fmt.Errorf("%w: failed to update interval: %v", ErrInternal, err)
			}
		}

		// 2. Удаляем окна компании на дни, которых больше нет
		keepDays := windowDays(windows)
		if err := s.companyRepo.DeleteWorkingHoursNotIn(txCtx, req.CompanyID, keepDays); err != nil {
			s.logger.Error("UpdateCompanyWorkingHours: failed to delete stale windows: %v", err)
			return fmt.Errorf("%w: failed to delete stale windows: %v", ErrInternal, err)
		}

		// 3. Создаем или обновляем окна на оставшиеся дни
		for _, w := range windows {
			if err := s.companyRepo.UpsertWorkingHour(txCtx, req.CompanyID, w); err != nil {
				s.logger.Error("UpdateCompanyWorkingHours: failed to upsert window day=%d: %v", w.DayOfWeek, err)
				return fmt.Errorf("%w: failed to upsert window: %v", ErrInternal, err)
			}
		}

		// 4. Каскадная синхронизация расписаний сотрудников
		return s.syncCompanyDownstream(txCtx, req.CompanyID, windows)
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateCompanyWorkingHours: company=%d updated, %d windows", req.CompanyID, len(windows))
	return &models.WorkingHoursResponse{WorkingHours: models.FromDomainWindows(windows)}, nil
}

// GetCompanyWorkingHours возвращает рабочие часы компании
func (s *Service) GetCompanyWorkingHours(ctx context.Context, companyID int64) (*models.WorkingHoursResponse, error) {
	if _, err := s.getCompany(ctx, companyID); err != nil {
		return nil, err
	}

	windows, err := s.companyRepo.GetWorkingHours(ctx, companyID)
	if err != nil {
		s.logger.Error("GetCompanyWorkingHours: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetCompanyWorkingHours - repository error: %v", ErrInternal, err)
	}

	return &models.WorkingHoursResponse{WorkingHours: models.FromDomainWindows(windows)}, nil
}

// CreateDefaultWorkingHours создает компании стандартные часы Пн-Пт.
// Вызывается при регистрации новой компании.
func (s *Service) CreateDefaultWorkingHours(ctx context.Context, companyID int64) error {
	s.logger.Info("CreateDefaultWorkingHours: company=%d", companyID)

	start, err := types.NewTimeStringFromString(domain.DefaultWorkStartTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	end, err := types.NewTimeStringFromString(domain.DefaultWorkEndTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// Понедельник (1) - пятница (5)
	for day := 1; day <= 5; day++ {
		window := domain.DailyWindow{DayOfWeek: day, StartTime: start, EndTime: end}
		if err := s.companyRepo.UpsertWorkingHour(ctx, companyID, window); err != nil {
			s.logger.Error("CreateDefaultWorkingHours: failed to upsert day=%d: %v", day, err)
			return fmt.Errorf("%w: failed to create default hours: %v", ErrInternal, err)
		}
	}

	return nil
}

// UpdateEmployeeWorkingHours обновляет персональные часы сотрудника и каскадно
// синхронизирует его категорийные окна в той же транзакции.
func (s *Service) UpdateEmployeeWorkingHours(ctx context.Context, req *models.UpdateEmployeeWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("UpdateEmployeeWorkingHours: employee=%d, windows=%d", req.EmployeeID, len(req.WorkingHours))

	windows, err := models.ToDomainWindows(req.WorkingHours)
	if err != nil {
		s.logger.Warn("UpdateEmployeeWorkingHours: invalid windows for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.getOwnedEmployee(ctx, req.EmployeeID, req.CallerCompanyID); err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Удаляем персональные окна на дни, которых больше нет
		keepDays := windowDays(windows)
		if err := s.scheduleRepo.DeleteEmployeeWindowsNotIn(txCtx, req.EmployeeID, keepDays); err != nil {
			s.logger.Error("UpdateEmployeeWorkingHours: failed to delete stale windows: %v", err)
			return fmt.Errorf("%w: failed to delete stale windows: %v", ErrInternal, err)
		}

		// 2. Создаем или обновляем окна на оставшиеся дни
		for _, w := range windows {
			if err := s.scheduleRepo.UpsertEmployeeWindow(txCtx, req.EmployeeID, w); err != nil {
				s.logger.Error("UpdateEmployeeWorkingHours: failed to upsert window day=%d: %v", w.DayOfWeek, err)
				return fmt.Errorf("%w: failed to upsert window: %v", ErrInternal, err)
			}
		}

		// 3. Каскадная синхронизация категорийных окон сотрудника
		return s.syncEmployeeDownstream(txCtx, req.EmployeeID, windows)
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateEmployeeWorkingHours: employee=%d updated, %d windows", req.EmployeeID, len(windows))
	return &models.WorkingHoursResponse{WorkingHours: models.FromDomainWindows(windows)}, nil
}

// GetEmployeeWorkingHours возвращает персональные часы сотрудника
func (s *Service) GetEmployeeWorkingHours(ctx context.Context, employeeID int64) (*models.WorkingHoursResponse, error) {
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	windows, err := s.scheduleRepo.ListEmployeeWindows(ctx, employeeID)
	if err != nil {
		s.logger.Error("GetEmployeeWorkingHours: repository error for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: GetEmployeeWorkingHours - repository error: %v", ErrInternal, err)
	}

	return &models.WorkingHoursResponse{WorkingHours: models.FromDomainWindows(windows)}, nil
}

// CreateCategoryWorkingHour создает категорийное окно сотрудника.
// Окно уникально по (сотрудник, категория, день недели).
func (s *Service) CreateCategoryWorkingHour(ctx context.Context, input models.CategoryWorkingHourInput, callerCompanyID int64) (*models.CategoryWorkingHourResponse, error) {
	s.logger.Info("CreateCategoryWorkingHour: employee=%d, category=%d, day=%d",
		input.EmployeeID, input.CategoryID, input.DayOfWeek)

	hour, err := s.prepareCategoryWindow(ctx, input, callerCompanyID)
	if err != nil {
		return nil, err
	}

	created, err := s.scheduleRepo.CreateCategoryWindow(ctx, hour)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateWindow) {
			s.logger.Warn("CreateCategoryWorkingHour: duplicate window for employee=%d, category=%d, day=%d",
				input.EmployeeID, input.CategoryID, input.DayOfWeek)
			return nil, ErrDuplicateWindow
		}
		s.logger.Error("CreateCategoryWorkingHour: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateCategoryWorkingHour - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCategoryWindow(created), nil
}

// BulkCreateCategoryWorkingHours создает набор категорийных окон.
// Ошибка одного окна не прерывает остальные: результат содержит и созданные
// окна, и причины отказов по каждому неудачному.
func (s *Service) BulkCreateCategoryWorkingHours(ctx context.Context, req *models.BulkCreateCategoryWorkingHoursRequest) (*models.BulkCreateCategoryWorkingHoursResponse, error) {
	s.logger.Info("BulkCreateCategoryWorkingHours: %d hours", len(req.Hours))

	resp := &models.BulkCreateCategoryWorkingHoursResponse{
		Created: make([]*models.CategoryWorkingHourResponse, 0, len(req.Hours)),
		Failed:  make([]models.BulkCreateFailure, 0),
	}

	for _, input := range req.Hours {
		created, err := s.CreateCategoryWorkingHour(ctx, input, req.CallerCompanyID)
		if err != nil {
			resp.Failed = append(resp.Failed, models.BulkCreateFailure{
				Input:  input,
				Reason: err.Error(),
			})
			continue
		}
		resp.Created = append(resp.Created, created)
	}

	s.logger.Info("BulkCreateCategoryWorkingHours: created=%d, failed=%d", len(resp.Created), len(resp.Failed))
	return resp, nil
}

// ListCategoryWorkingHours возвращает категорийные окна сотрудника,
// опционально отфильтрованные по категории
func (s *Service) ListCategoryWorkingHours(ctx context.Context, employeeID int64, categoryID *int64, callerCompanyID int64) ([]*models.CategoryWorkingHourResponse, error) {
	if _, err := s.getOwnedEmployee(ctx, employeeID, callerCompanyID); err != nil {
		return nil, err
	}

	hours, err := s.scheduleRepo.ListCategoryWindows(ctx, employeeID, categoryID)
	if err != nil {
		s.logger.Error("ListCategoryWorkingHours: repository error for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: ListCategoryWorkingHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCategoryWindows(hours), nil
}

// UpdateCategoryWorkingHour изменяет время категорийного окна
func (s *Service) UpdateCategoryWorkingHour(ctx context.Context, req *models.UpdateCategoryWorkingHourRequest) (*models.CategoryWorkingHourResponse, error) {
	s.logger.Info("UpdateCategoryWorkingHour: id=%d", req.ID)

	hour, err := s.getOwnedCategoryWindow(ctx, req.ID, req.CallerCompanyID)
	if err != nil {
		return nil, err
	}

	window, err := models.WindowInput{
		DayOfWeek: hour.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}.ToDomain()
	if err != nil {
		s.logger.Warn("UpdateCategoryWorkingHour: invalid window for id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.scheduleRepo.UpdateCategoryWindow(ctx, req.ID, window); err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			return nil, ErrWindowNotFound
		}
		s.logger.Error("UpdateCategoryWorkingHour: repository error for id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: UpdateCategoryWorkingHour - repository error: %v", ErrInternal, err)
	}

	hour.StartTime = window.StartTime
	hour.EndTime = window.EndTime
	return models.FromDomainCategoryWindow(hour), nil
}

// DeleteCategoryWorkingHour удаляет категорийное окно
func (s *Service) DeleteCategoryWorkingHour(ctx context.Context, id int64, callerCompanyID int64) error {
	s.logger.Info("DeleteCategoryWorkingHour: id=%d", id)

	if _, err := s.getOwnedCategoryWindow(ctx, id, callerCompanyID); err != nil {
		return err
	}

	if err := s.scheduleRepo.DeleteCategoryWindow(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteCategoryWorkingHour: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteCategoryWorkingHour - repository error: %v", ErrInternal, err)
	}

	return nil
}

// syncCompanyDownstream синхронизирует расписания сотрудников после изменения
// часов компании: окна на удалённые дни удаляются, окна шире нового окна
// компании подрезаются до его границ. Окно, вырождающееся после подрезки,
// остаётся без изменений.
func (s *Service) syncCompanyDownstream(ctx context.Context, companyID int64, upstream []domain.DailyWindow) error {
	upstreamByDay := windowsByDay(upstream)

	// Персональные окна сотрудников
	employeeWindows, err := s.scheduleRepo.ListEmployeeWindowsByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("syncCompanyDownstream: failed to list employee windows: %v", err)
		return fmt.Errorf("%w: failed to list employee windows: %v", ErrInternal, err)
	}

	removedDays := make(map[int]struct{})
	for _, ew := range employeeWindows {
		parent, ok := upstreamByDay[ew.Window.DayOfWeek]
		if !ok {
			removedDays[ew.Window.DayOfWeek] = struct{}{}
			continue
		}

		if clipped, changed := domain.ClipWindow(ew.Window, parent); changed {
			if err := s.scheduleRepo.UpsertEmployeeWindow(ctx, ew.EmployeeID, clipped); err != nil {
				s.logger.Error("syncCompanyDownstream: failed to clip employee=%d day=%d: %v",
					ew.EmployeeID, ew.Window.DayOfWeek, err)
				return fmt.Errorf("%w: failed to clip employee window: %v", ErrInternal, err)
			}
		}
	}

	// Категорийные окна сотрудников
	categoryWindows, err := s.scheduleRepo.ListCategoryWindowsByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("syncCompanyDownstream: failed to list category windows: %v", err)
		return fmt.Errorf("%w: failed to list category windows: %v", ErrInternal, err)
	}

	for i := range categoryWindows {
		h := &categoryWindows[i]
		parent, ok := upstreamByDay[h.DayOfWeek]
		if !ok {
			removedDays[h.DayOfWeek] = struct{}{}
			continue
		}

		if clipped, changed := domain.ClipWindow(h.Window(), parent); changed {
			if err := s.scheduleRepo.UpdateCategoryWindow(ctx, h.ID, clipped); err != nil {
				s.logger.Error("syncCompanyDownstream: failed to clip category window id=%d: %v", h.ID, err)
				return fmt.Errorf("%w: failed to clip category window: %v", ErrInternal, err)
			}
		}
	}

	// Удаляем все окна нижних уровней на исчезнувшие дни
	if len(removedDays) > 0 {
		days := daysSetToSlice(removedDays)
		if err := s.scheduleRepo.DeleteEmployeeWindowsForDays(ctx, companyID, days); err != nil {
			s.logger.Error("syncCompanyDownstream: failed to delete employee windows: %v", err)
			return fmt.Errorf("%w: failed to delete employee windows: %v", ErrInternal, err)
		}
		if err := s.scheduleRepo.DeleteCategoryWindowsForDays(ctx, companyID, days); err != nil {
			s.logger.Error("syncCompanyDownstream: failed to delete category windows: %v", err)
			return fmt.Errorf("%w: failed to delete category windows: %v", ErrInternal, err)
		}
		s.logger.Info("syncCompanyDownstream: removed downstream windows for days %v", days)
	}

	return nil
}

// syncEmployeeDownstream синхронизирует категорийные окна сотрудника после
// изменения его персональных часов по тем же правилам, что и каскад компании.
func (s *Service) syncEmployeeDownstream(ctx context.Context, employeeID int64, upstream []domain.DailyWindow) error {
	upstreamByDay := windowsByDay(upstream)

	categoryWindows, err := s.scheduleRepo.ListCategoryWindows(ctx, employeeID, nil)
	if err != nil {
		s.logger.Error("syncEmployeeDownstream: failed to list category windows: %v", err)
		return fmt.Errorf("%w: failed to list category windows: %v", ErrInternal, err)
	}

	removedDays := make(map[int]struct{})
	for i := range categoryWindows {
		h := &categoryWindows[i]
		parent, ok := upstreamByDay[h.DayOfWeek]
		if !ok {
			removedDays[h.DayOfWeek] = struct{}{}
			continue
		}

		if clipped, changed := domain.ClipWindow(h.Window(), parent); changed {
			if err := s.scheduleRepo.UpdateCategoryWindow(ctx, h.ID, clipped); err != nil {
				s.logger.Error("syncEmployeeDownstream: failed to clip category window id=%d: %v", h.ID, err)
				return fmt.Errorf("%w: failed to clip category window: %v", ErrInternal, err)
			}
		}
	}

	if len(removedDays) > 0 {
		days := daysSetToSlice(removedDays)
		if err := s.scheduleRepo.DeleteCategoryWindowsForEmployeeDays(ctx, employeeID, days); err != nil {
			s.logger.Error("syncEmployeeDownstream: failed to delete category windows: %v", err)
			return fmt.Errorf("%w: failed to delete category windows: %v", ErrInternal, err)
		}
		s.logger.Info("syncEmployeeDownstream: removed category windows for days %v", days)
	}

	return nil
}

// prepareCategoryWindow валидирует входные данные категорийного окна и
// проверяет владение сотрудником и категорией
func (s *Service) prepareCategoryWindow(ctx context.Context, input models.CategoryWorkingHourInput, callerCompanyID int64) (*domain.EmployeeCategoryWorkingHour, error) {
	window, err := models.WindowInput{
		DayOfWeek: input.DayOfWeek,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}.ToDomain()
	if err != nil {
		s.logger.Warn("prepareCategoryWindow: invalid window: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	employee, err := s.getOwnedEmployee(ctx, input.EmployeeID, callerCompanyID)
	if err != nil {
		return nil, err
	}

	category, err := s.catalogRepo.GetCategoryByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCategoryNotFound) {
			s.logger.Warn("prepareCategoryWindow: category id=%d not found", input.CategoryID)
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("prepareCategoryWindow: repository error for category id=%d: %v", input.CategoryID, err)
		return nil, fmt.Errorf("%w: prepareCategoryWindow - repository error: %v", ErrInternal, err)
	}

	// Категория должна принадлежать той же компании, что и сотрудник
	if category.CompanyID != employee.CompanyID {
		s.logger.Warn("prepareCategoryWindow: category id=%d belongs to company=%d, employee to company=%d",
			category.ID, category.CompanyID, employee.CompanyID)
		return nil, ErrAccessDenied
	}

	return &domain.EmployeeCategoryWorkingHour{
		EmployeeID: input.EmployeeID,
		CategoryID: input.CategoryID,
		DayOfWeek:  window.DayOfWeek,
		StartTime:  window.StartTime,
		EndTime:    window.EndTime,
	}, nil
}

// getCompany получает компанию, транслируя ошибку репозитория
func (s *Service) getCompany(ctx context.Context, id int64) (*domain.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			s.logger.Warn("getCompany: company id=%d not found", id)
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("getCompany: repository error for company id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getCompany - repository error: %v", ErrInternal, err)
	}
	return company, nil
}

// getEmployee получает сотрудника, транслируя ошибку репозитория
func (s *Service) getEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("getEmployee: employee id=%d not found", id)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("getEmployee: repository error for employee id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getEmployee - repository error: %v", ErrInternal, err)
	}
	return employee, nil
}

// getOwnedEmployee получает сотрудника и проверяет владение компанией
func (s *Service) getOwnedEmployee(ctx context.Context, employeeID, callerCompanyID int64) (*domain.Employee, error) {
	employee, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if employee.CompanyID != callerCompanyID {
		s.logger.Warn("getOwnedEmployee: company=%d does not own employee id=%d (owner=%d)",
			callerCompanyID, employeeID, employee.CompanyID)
		return nil, ErrAccessDenied
	}

	return employee, nil
}

// getOwnedCategoryWindow получает категорийное окно и проверяет владение
// через сотрудника
func (s *Service) getOwnedCategoryWindow(ctx context.Context, id, callerCompanyID int64) (*domain.EmployeeCategoryWorkingHour, error) {
	hour, err := s.scheduleRepo.GetCategoryWindow(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			s.logger.Warn("getOwnedCategoryWindow: window id=%d not found", id)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("getOwnedCategoryWindow: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getOwnedCategoryWindow - repository error: %v", ErrInternal, err)
	}

	if _, err := s.getOwnedEmployee(ctx, hour.EmployeeID, callerCompanyID); err != nil {
		return nil, err
	}

	return hour, nil
}

// windowDays возвращает дни недели набора окон
func windowDays(windows []domain.DailyWindow) []int {
	days := make([]int, 0, len(windows))
	for _, w := range windows {
		days = append(days, w.DayOfWeek)
	}
	return days
}

// windowsByDay индексирует окна по дню недели
func windowsByDay(windows []domain.DailyWindow) map[int]domain.DailyWindow {
	byDay := make(map[int]domain.DailyWindow, len(windows))
	for _, w := range windows {
		byDay[w.DayOfWeek] = w
	}
	return byDay
}

// daysSetToSlice конвертирует множество дней в слайс
func daysSetToSlice(set map[int]struct{}) []int {
	days := make([]int, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	return days
}
