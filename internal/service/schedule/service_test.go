package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	companyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/company"
	employeeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/employee"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

type fakeCompanyRepo struct {
	company *domain.Company
	windows map[int]domain.DailyWindow
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id int64) (*domain.Company, error) {
	if f.company == nil || f.company.ID != id {
		return nil, companyRepo.ErrCompanyNotFound
	}
	return f.company, nil
}

func (f *fakeCompanyRepo) UpdateInterval(_ context.Context, _ int64, interval int) error {
	f.company.IntervalBetweenAppointments = interval
	return nil
}

func (f *fakeCompanyRepo) GetWorkingHours(_ context.Context, _ int64) ([]domain.DailyWindow, error) {
	result := make([]domain.DailyWindow, 0, len(f.windows))
	for _, w := range f.windows {
		result = append(result, w)
	}
	return result, nil
}

func (f *fakeCompanyRepo) UpsertWorkingHour(_ context.Context, _ int64, window domain.DailyWindow) error {
	f.windows[window.DayOfWeek] = window
	return nil
}

func (f *fakeCompanyRepo) DeleteWorkingHoursNotIn(_ context.Context, _ int64, keepDays []int) error {
	keep := make(map[int]struct{}, len(keepDays))
	for _, d := range keepDays {
		keep[d] = struct{}{}
	}
	for day := range f.windows {
		if _, ok := keep[day]; !ok {
			delete(f.windows, day)
		}
	}
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

type fakeCatalogRepo struct {
	categories map[int64]*domain.Category
}

func (f *fakeCatalogRepo) GetCategoryByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, catalogRepo.ErrCategoryNotFound
	}
	return c, nil
}

// fakeScheduleRepo in-memory реализация репозитория расписаний.
// Окна сотрудников ключуются по (employeeID, day), категорийные по ID.
type fakeScheduleRepo struct {
	employeeWindows map[int64]map[int]domain.DailyWindow
	categoryWindows map[int64]*domain.EmployeeCategoryWorkingHour
	employees       map[int64]*domain.Employee
	nextID          int64
}

func newFakeScheduleRepo(employees map[int64]*domain.Employee) *fakeScheduleRepo {
	return &fakeScheduleRepo{
		employeeWindows: make(map[int64]map[int]domain.DailyWindow),
		categoryWindows: make(map[int64]*domain.EmployeeCategoryWorkingHour),
		employees:       employees,
	}
}

func (f *fakeScheduleRepo) ListEmployeeWindows(_ context.Context, employeeID int64) ([]domain.DailyWindow, error) {
	result := make([]domain.DailyWindow, 0)
	for _, w := range f.employeeWindows[employeeID] {
		result = append(result, w)
	}
	return result, nil
}

func (f *fakeScheduleRepo) ListEmployeeWindowsByCompany(_ context.Context, companyID int64) ([]scheduleRepo.EmployeeWindow, error) {
	result := make([]scheduleRepo.EmployeeWindow, 0)
	for employeeID, windows := range f.employeeWindows {
		if f.employees[employeeID].CompanyID != companyID {
			continue
		}
		for _, w := range windows {
			result = append(result, scheduleRepo.EmployeeWindow{EmployeeID: employeeID, Window: w})
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) UpsertEmployeeWindow(_ context.Context, employeeID int64, window domain.DailyWindow) error {
	if f.employeeWindows[employeeID] == nil {
		f.employeeWindows[employeeID] = make(map[int]domain.DailyWindow)
	}
	f.employeeWindows[employeeID][window.DayOfWeek] = window
	return nil
}

func (f *fakeScheduleRepo) DeleteEmployeeWindowsNotIn(_ context.Context, employeeID int64, keepDays []int) error {
	keep := make(map[int]struct{}, len(keepDays))
	for _, d := range keepDays {
		keep[d] = struct{}{}
	}
	for day := range f.employeeWindows[employeeID] {
		if _, ok := keep[day]; !ok {
			delete(f.employeeWindows[employeeID], day)
		}
	}
	return nil
}

func (f *fakeScheduleRepo) DeleteEmployeeWindowsForDays(_ context.Context, companyID int64, days []int) error {
	for employeeID, windows := range f.employeeWindows {
		if f.employees[employeeID].CompanyID != companyID {
			continue
		}
		for _, day := range days {
			delete(windows, day)
		}
	}
	return nil
}

func (f *fakeScheduleRepo) CreateCategoryWindow(_ context.Context, hour *domain.EmployeeCategoryWorkingHour) (*domain.EmployeeCategoryWorkingHour, error) {
	for _, existing := range f.categoryWindows {
		if existing.EmployeeID == hour.EmployeeID &&
			existing.CategoryID == hour.CategoryID &&
			existing.DayOfWeek == hour.DayOfWeek {
			return nil, scheduleRepo.ErrDuplicateWindow
		}
	}

	f.nextID++
	created := *hour
	created.ID = f.nextID
	f.categoryWindows[created.ID] = &created
	return &created, nil
}

func (f *fakeScheduleRepo) GetCategoryWindow(_ context.Context, id int64) (*domain.EmployeeCategoryWorkingHour, error) {
	h, ok := f.categoryWindows[id]
	if !ok {
		return nil, scheduleRepo.ErrWindowNotFound
	}
	return h, nil
}

func (f *fakeScheduleRepo) ListCategoryWindows(_ context.Context, employeeID int64, categoryID *int64) ([]domain.EmployeeCategoryWorkingHour, error) {
	result := make([]domain.EmployeeCategoryWorkingHour, 0)
	for _, h := range f.categoryWindows {
		if h.EmployeeID != employeeID {
			continue
		}
		if categoryID != nil && h.CategoryID != *categoryID {
			continue
		}
		result = append(result, *h)
	}
	return result, nil
}

func (f *fakeScheduleRepo) ListCategoryWindowsByCompany(_ context.Context, companyID int64) ([]domain.EmployeeCategoryWorkingHour, error) {
	result := make([]domain.EmployeeCategoryWorkingHour, 0)
	for _, h := range f.categoryWindows {
		if f.employees[h.EmployeeID].CompanyID != companyID {
			continue
		}
		result = append(result, *h)
	}
	return result, nil
}

func (f *fakeScheduleRepo) UpdateCategoryWindow(_ context.Context, id int64, window domain.DailyWindow) error {
	h, ok := f.categoryWindows[id]
	if !ok {
		return scheduleRepo.ErrWindowNotFound
	}
	h.StartTime = window.StartTime
	h.EndTime = window.EndTime
	return nil
}

func (f *fakeScheduleRepo) DeleteCategoryWindow(_ context.Context, id int64) error {
	if _, ok := f.categoryWindows[id]; !ok {
		return scheduleRepo.ErrWindowNotFound
	}
	delete(f.categoryWindows, id)
	return nil
}

func (f *fakeScheduleRepo) DeleteCategoryWindowsForEmployeeDays(_ context.Context, employeeID int64, days []int) error {
	for id, h := range f.categoryWindows {
		if h.EmployeeID != employeeID {
			continue
		}
		for _, day := range days {
			if h.DayOfWeek == day {
				delete(f.categoryWindows, id)
			}
		}
	}
	return nil
}

func (f *fakeScheduleRepo) DeleteCategoryWindowsForDays(_ context.Context, companyID int64, days []int) error {
	for id, h := range f.categoryWindows {
		if f.employees[h.EmployeeID].CompanyID != companyID {
			continue
		}
		for _, day := range days {
			if h.DayOfWeek == day {
				delete(f.categoryWindows, id)
			}
		}
	}
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func windowInput(day int, start, end string) models.WindowInput {
	return models.WindowInput{DayOfWeek: day, StartTime: start, EndTime: end}
}

func newTestService() (*Service, *fakeCompanyRepo, *fakeScheduleRepo) {
	employees := map[int64]*domain.Employee{
		10: {ID: 10, CompanyID: 1, IsActive: true},
	}
	companies := &fakeCompanyRepo{
		company: &domain.Company{ID: 1, IntervalBetweenAppointments: 30},
		windows: map[int]domain.DailyWindow{
			1: {DayOfWeek: 1, StartTime: "08:00", EndTime: "17:00"},
			2: {DayOfWeek: 2, StartTime: "08:00", EndTime: "17:00"},
		},
	}
	schedules := newFakeScheduleRepo(employees)
	catalog := &fakeCatalogRepo{
		categories: map[int64]*domain.Category{
			5: {ID: 5, CompanyID: 1, Name: "Общие услуги"},
		},
	}

	svc := NewService(companies, &fakeEmployeeRepo{employees: employees}, catalog, schedules, fakeTxManager{}, nopLogger{})
	return svc, companies, schedules
}

func TestUpdateCompanyWorkingHours_RemovedDayCascades(t *testing.T) {
	svc, companies, schedules := newTestService()

	// У сотрудника есть персональное и категорийное окно на вторник
	require.NoError(t, schedules.UpsertEmployeeWindow(context.Background(), 10,
		domain.DailyWindow{DayOfWeek: 2, StartTime: "09:00", EndTime: "15:00"}))
	_, err := schedules.CreateCategoryWindow(context.Background(), &domain.EmployeeCategoryWorkingHour{
		EmployeeID: 10, CategoryID: 5, DayOfWeek: 2, StartTime: "10:00", EndTime: "14:00",
	})
	require.NoError(t, err)

	// Компания убирает вторник из расписания
	_, err = svc.UpdateCompanyWorkingHours(context.Background(), &models.UpdateCompanyWorkingHoursRequest{
		CompanyID:    1,
		WorkingHours: []models.WindowInput{windowInput(1, "08:00", "17:00")},
	})
	require.NoError(t, err)

	// Окно компании на вторник удалено
	_, ok := companies.windows[2]
	assert.False(t, ok)

	// Каскад удалил окна сотрудника и категории на вторник
	assert.Empty(t, schedules.employeeWindows[10])
	assert.Empty(t, schedules.categoryWindows)
}

func TestUpdateCompanyWorkingHours_ClipsWiderWindows(t *testing.T) {
	svc, _, schedules := newTestService()

	require.NoError(t, schedules.UpsertEmployeeWindow(context.Background(), 10,
		domain.DailyWindow{DayOfWeek: 1, StartTime: "07:00", EndTime: "19:00"}))

	// Новое окно компании уже, чем персональное окно сотрудника
	_, err := svc.UpdateCompanyWorkingHours(context.Background(), &models.UpdateCompanyWorkingHoursRequest{
		CompanyID: 1,
		WorkingHours: []models.WindowInput{
			windowInput(1, "09:00", "16:00"),
			windowInput(2, "08:00", "17:00"),
		},
	})
	require.NoError(t, err)

	clipped := schedules.employeeWindows[10][1]
	assert.Equal(t, domain.DailyWindow{DayOfWeek: 1, StartTime: "09:00", EndTime: "16:00"}, clipped)
}

func TestUpdateCompanyWorkingHours_DisjointWindowKept(t *testing.T) {
	svc, _, schedules := newTestService()

	// Окно сотрудника целиком вне нового окна компании: подрезка вырождается,
	// окно остаётся без изменений
	require.NoError(t, schedules.UpsertEmployeeWindow(context.Background(), 10,
		domain.DailyWindow{DayOfWeek: 1, StartTime: "18:00", EndTime: "20:00"}))

	_, err := svc.UpdateCompanyWorkingHours(context.Background(), &models.UpdateCompanyWorkingHoursRequest{
		CompanyID:    1,
		WorkingHours: []models.WindowInput{windowInput(1, "08:00", "17:00")},
	})
	require.NoError(t, err)

	kept := schedules.employeeWindows[10][1]
	assert.Equal(t, domain.DailyWindow{DayOfWeek: 1, StartTime: "18:00", EndTime: "20:00"}, kept)
}

func TestUpdateCompanyWorkingHours_UpdatesInterval(t *testing.T) {
	svc, companies, _ := newTestService()

	interval := 45
	_, err := svc.UpdateCompanyWorkingHours(context.Background(), &models.UpdateCompanyWorkingHoursRequest{
		CompanyID:                   1,
		IntervalBetweenAppointments: &interval,
		WorkingHours:                []models.WindowInput{windowInput(1, "08:00", "17:00")},
	})
	require.NoError(t, err)

	assert.Equal(t, 45, companies.company.IntervalBetweenAppointments)
}

func TestUpdateCompanyWorkingHours_DuplicateDayRejected(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateCompanyWorkingHours(context.Background(), &models.UpdateCompanyWorkingHoursRequest{
		CompanyID: 1,
		WorkingHours: []models.WindowInput{
			windowInput(1, "08:00", "12:00"),
			windowInput(1, "13:00", "17:00"),
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateEmployeeWorkingHours_CascadesToCategoryWindows(t *testing.T) {
	svc, _, schedules := newTestService()

	_, err := schedules.CreateCategoryWindow(context.Background(), &domain.EmployeeCategoryWorkingHour{
		EmployeeID: 10, CategoryID: 5, DayOfWeek: 1, StartTime: "08:00", EndTime: "17:00",
	})
	require.NoError(t, err)
	tuesday, err := schedules.CreateCategoryWindow(context.Background(), &domain.EmployeeCategoryWorkingHour{
		EmployeeID: 10, CategoryID: 5, DayOfWeek: 2, StartTime: "10:00", EndTime: "14:00",
	})
	require.NoError(t, err)

	// Персональные часы сотрудника: только понедельник, уже чем было
	_, err = svc.UpdateEmployeeWorkingHours(context.Background(), &models.UpdateEmployeeWorkingHoursRequest{
		EmployeeID:      10,
		CallerCompanyID: 1,
		WorkingHours:    []models.WindowInput{windowInput(1, "10:00", "15:00")},
	})
	require.NoError(t, err)

	// Понедельничное окно категории подрезано, вторничное удалено
	require.Len(t, schedules.categoryWindows, 1)
	for _, h := range schedules.categoryWindows {
		assert.Equal(t, 1, h.DayOfWeek)
		assert.Equal(t, "10:00", h.StartTime.String())
		assert.Equal(t, "15:00", h.EndTime.String())
	}
	_, err = schedules.GetCategoryWindow(context.Background(), tuesday.ID)
	assert.ErrorIs(t, err, scheduleRepo.ErrWindowNotFound)
}

func TestUpdateEmployeeWorkingHours_WrongCompany(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateEmployeeWorkingHours(context.Background(), &models.UpdateEmployeeWorkingHoursRequest{
		EmployeeID:      10,
		CallerCompanyID: 99,
		WorkingHours:    []models.WindowInput{windowInput(1, "10:00", "15:00")},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreateCategoryWorkingHour(t *testing.T) {
	svc, _, _ := newTestService()

	input := models.CategoryWorkingHourInput{
		EmployeeID: 10,
		CategoryID: 5,
		DayOfWeek:  1,
		StartTime:  "09:00",
		EndTime:    "13:00",
	}

	created, err := svc.CreateCategoryWorkingHour(context.Background(), input, 1)
	require.NoError(t, err)
	assert.Equal(t, "09:00", created.StartTime)
	assert.Equal(t, "13:00", created.EndTime)

	// Повтор на тот же день запрещён
	_, err = svc.CreateCategoryWorkingHour(context.Background(), input, 1)
	assert.ErrorIs(t, err, ErrDuplicateWindow)
}

func TestCreateCategoryWorkingHour_UnknownCategory(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateCategoryWorkingHour(context.Background(), models.CategoryWorkingHourInput{
		EmployeeID: 10,
		CategoryID: 999,
		DayOfWeek:  1,
		StartTime:  "09:00",
		EndTime:    "13:00",
	}, 1)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestBulkCreateCategoryWorkingHours_PartialFailure(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.BulkCreateCategoryWorkingHours(context.Background(), &models.BulkCreateCategoryWorkingHoursRequest{
		CallerCompanyID: 1,
		Hours: []models.CategoryWorkingHourInput{
			{EmployeeID: 10, CategoryID: 5, DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00"},
			{EmployeeID: 10, CategoryID: 5, DayOfWeek: 1, StartTime: "14:00", EndTime: "16:00"}, // дубликат дня
			{EmployeeID: 10, CategoryID: 5, DayOfWeek: 2, StartTime: "09:00", EndTime: "13:00"},
		},
	})
	require.NoError(t, err)

	assert.Len(t, resp.Created, 2)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, 1, resp.Failed[0].Input.DayOfWeek)
}

func TestCreateDefaultWorkingHours(t *testing.T) {
	svc, companies, _ := newTestService()
	companies.windows = map[int]domain.DailyWindow{}

	require.NoError(t, svc.CreateDefaultWorkingHours(context.Background(), 1))

	assert.Len(t, companies.windows, 5)
	for day := 1; day <= 5; day++ {
		w := companies.windows[day]
		assert.Equal(t, "08:00", w.StartTime.String())
		assert.Equal(t, "17:00", w.EndTime.String())
	}
}
