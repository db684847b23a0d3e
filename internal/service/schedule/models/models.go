package models

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/timeutil"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// WindowInput рабочее окно на день недели во входных данных
type WindowInput struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime"` // "08:00"
	EndTime   string `json:"endTime"`   // "17:00"
}

// ToDomain валидирует окно и конвертирует его в доменный вид
func (w WindowInput) ToDomain() (domain.DailyWindow, error) {
	if err := timeutil.ValidateDayOfWeek(w.DayOfWeek); err != nil {
		return domain.DailyWindow{}, err
	}
	if err := timeutil.ValidateTimeRange(w.StartTime, w.EndTime); err != nil {
		return domain.DailyWindow{}, err
	}

	start, err := types.NewTimeStringFromString(w.StartTime)
	if err != nil {
		return domain.DailyWindow{}, err
	}
	end, err := types.NewTimeStringFromString(w.EndTime)
	if err != nil {
		return domain.DailyWindow{}, err
	}

	return domain.DailyWindow{DayOfWeek: w.DayOfWeek, StartTime: start, EndTime: end}, nil
}

// ToDomainWindows валидирует набор окон: не более одного окна на день недели
func ToDomainWindows(inputs []WindowInput) ([]domain.DailyWindow, error) {
	seen := make(map[int]struct{}, len(inputs))
	windows := make([]domain.DailyWindow, 0, len(inputs))

	for _, in := range inputs {
		if _, ok := seen[in.DayOfWeek]; ok {
			return nil, fmt.Errorf("duplicate window for day %d", in.DayOfWeek)
		}
		seen[in.DayOfWeek] = struct{}{}

		w, err := in.ToDomain()
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	return windows, nil
}

// UpdateCompanyWorkingHoursRequest запрос на обновление часов компании
type UpdateCompanyWorkingHoursRequest struct {
	CompanyID                   int64         `json:"companyId"`
	IntervalBetweenAppointments *int          `json:"intervalBetweenAppointments,omitempty"`
	WorkingHours                []WindowInput `json:"workingHours"`
}

// UpdateEmployeeWorkingHoursRequest запрос на обновление персональных часов сотрудника
type UpdateEmployeeWorkingHoursRequest struct {
	EmployeeID      int64         `json:"employeeId"`
	CallerCompanyID int64         `json:"-"`
	WorkingHours    []WindowInput `json:"workingHours"`
}

// CategoryWorkingHourInput запрос на создание категорийного окна
type CategoryWorkingHourInput struct {
	EmployeeID int64  `json:"employeeId"`
	CategoryID int64  `json:"categoryId"`
	DayOfWeek  int    `json:"dayOfWeek"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// BulkCreateCategoryWorkingHoursRequest запрос на массовое создание категорийных окон
type BulkCreateCategoryWorkingHoursRequest struct {
	CallerCompanyID int64                      `json:"-"`
	Hours           []CategoryWorkingHourInput `json:"hours"`
}

// UpdateCategoryWorkingHourRequest запрос на изменение времени категорийного окна
type UpdateCategoryWorkingHourRequest struct {
	ID              int64  `json:"-"`
	CallerCompanyID int64  `json:"-"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
}

// Response модели

// WindowResponse рабочее окно в ответе
type WindowResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromDomainWindow конвертирует доменное окно в response
func FromDomainWindow(w domain.DailyWindow) WindowResponse {
	return WindowResponse{
		DayOfWeek: w.DayOfWeek,
		StartTime: w.StartTime.String(),
		EndTime:   w.EndTime.String(),
	}
}

// FromDomainWindows конвертирует набор доменных окон в response
func FromDomainWindows(windows []domain.DailyWindow) []WindowResponse {
	result := make([]WindowResponse, 0, len(windows))
	for _, w := range windows {
		result = append(result, FromDomainWindow(w))
	}
	return result
}

// WorkingHoursResponse ответ с рабочими часами сущности
type WorkingHoursResponse struct {
	WorkingHours []WindowResponse `json:"workingHours"`
}

// CategoryWorkingHourResponse категорийное окно в ответе
type CategoryWorkingHourResponse struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employeeId"`
	CategoryID int64  `json:"categoryId"`
	DayOfWeek  int    `json:"dayOfWeek"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// FromDomainCategoryWindow конвертирует категорийное окно в response
func FromDomainCategoryWindow(h *domain.EmployeeCategoryWorkingHour) *CategoryWorkingHourResponse {
	return &CategoryWorkingHourResponse{
		ID:         h.ID,
		EmployeeID: h.EmployeeID,
		CategoryID: h.CategoryID,
		DayOfWeek:  h.DayOfWeek,
		StartTime:  h.StartTime.String(),
		EndTime:    h.EndTime.String(),
	}
}

// FromDomainCategoryWindows конвертирует список категорийных окон в response
func FromDomainCategoryWindows(hours []domain.EmployeeCategoryWorkingHour) []*CategoryWorkingHourResponse {
	result := make([]*CategoryWorkingHourResponse, 0, len(hours))
	for i := range hours {
		result = append(result, FromDomainCategoryWindow(&hours[i]))
	}
	return result
}

// BulkCreateFailure одно неудачное окно из массового создания
type BulkCreateFailure struct {
	Input  CategoryWorkingHourInput `json:"input"`
	Reason string                   `json:"reason"`
}

// BulkCreateCategoryWorkingHoursResponse результат массового создания:
// успешные окна и причины отказов по каждому неудачному
type BulkCreateCategoryWorkingHoursResponse struct {
	Created []*CategoryWorkingHourResponse `json:"created"`
	Failed  []BulkCreateFailure            `json:"failed"`
}
