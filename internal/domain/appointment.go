package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// Appointment represents a reservation of an employee's time.
// Обычная запись клиента либо блокировка времени владельцем (IsBlock=true).
type Appointment struct {
	ID         int64
	CompanyID  int64
	EmployeeID int64
	ClientID   *int64 // nil для блокировок
	Date       time.Time
	Status     AppointmentStatus
	IsBlock    bool

	// Агрегаты по выбранным услугам (для блокировок только длительность)
	TotalDurationMinutes int
	SubTotalPrice        float64
	Discount             float64
	TotalPrice           float64

	ServiceIDs []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the appointment has not reached a terminal state
func (a *Appointment) IsPending() bool {
	return a.Status == StatusPending
}

// CanTransition returns true if the appointment can move to a new status.
// Переходы разрешены только из PENDING; COMPLETED и CANCELLED терминальны.
func (a *Appointment) CanTransition() bool {
	return a.Status == StatusPending
}

// End возвращает момент окончания записи.
// Если длительность не задана, используется fallbackMinutes (интервал сотрудника).
func (a *Appointment) End(fallbackMinutes int) time.Time {
	duration := a.TotalDurationMinutes
	if duration <= 0 {
		duration = fallbackMinutes
	}
	return a.Date.Add(time.Duration(duration) * time.Minute)
}

// ConflictsWith проверяет, конфликтует ли кандидат candidate с записью a.
// Конфликт есть, если кандидат совпадает с началом записи или лежит строго
// внутри открытого интервала (start, end). Кандидат, равный end, НЕ конфликтует —
// запись "впритык" разрешена.
func (a *Appointment) ConflictsWith(candidate time.Time, fallbackMinutes int) bool {
	start := a.Date
	end := a.End(fallbackMinutes)

	if candidate.Equal(start) {
		return true
	}
	return candidate.After(start) && candidate.Before(end)
}

// ValidStatus проверяет, что строка является допустимым статусом
func ValidStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return AppointmentStatus(s), true
	}
	return "", false
}
