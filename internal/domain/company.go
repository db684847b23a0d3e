package domain

import "time"

// Company корневая сущность арендатора (салон, мастерская и т.п.).
// Владеет сотрудниками, категориями, услугами и записями.
type Company struct {
	ID          int64
	Name        string
	Link        string // уникальный slug для публичной страницы
	Email       string
	Phone       *string
	Description *string

	// Шаг сетки слотов по умолчанию, в минутах
	IntervalBetweenAppointments int

	// Не более одного окна на день недели
	WorkingHours []DailyWindow

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Employee сотрудник компании
type Employee struct {
	ID        int64
	CompanyID int64
	Name      string
	IsActive  bool

	// Шаг сетки слотов сотрудника; 0 — используется интервал компании
	ServiceInterval int

	// Устаревшие одиночные границы смены, сохранены для совместимости
	StartHour *string
	EndHour   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlotStep возвращает шаг сетки слотов сотрудника с фолбэком на интервал
// компании и дефолт сервиса.
func (e *Employee) SlotStep(company *Company) int {
	if e.ServiceInterval > 0 {
		return e.ServiceInterval
	}
	if company != nil && company.IntervalBetweenAppointments > 0 {
		return company.IntervalBetweenAppointments
	}
	return DefaultServiceIntervalMinutes
}
