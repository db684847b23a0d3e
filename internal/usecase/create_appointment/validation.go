package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one serviceID is required", ErrInvalidInput)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	return nil
}

// resolveDiscount применяет правила скидки: непривилегированным ролям скидка
// молча обнуляется, для остальных проверяются границы.
func resolveDiscount(discount float64, role domain.Role, subTotal float64) (float64, error) {
	if !role.CanApplyDiscount() {
		return 0, nil
	}

	if discount < 0 {
		return 0, fmt.Errorf("%w: discount must not be negative", ErrInvalidDiscount)
	}
	if discount > subTotal {
		return 0, fmt.Errorf("%w: discount exceeds subtotal", ErrInvalidDiscount)
	}

	return discount, nil
}

// validateWithinWindow проверяет, что время записи попадает в рабочее окно
// (границы включительно).
func validateWithinWindow(date time.Time, window domain.DailyWindow) error {
	minute := date.Hour()*60 + date.Minute()

	if minute < window.StartTime.Minutes() || minute > window.EndTime.Minutes() {
		return ErrOutOfHours
	}

	return nil
}

// isSlotAvailable проверяет доступность момента date среди записей appointments.
// Конфликт есть, если date совпадает с началом записи или лежит строго внутри
// её интервала; момент, равный концу записи, свободен.
func isSlotAvailable(date time.Time, now time.Time, appointments []*domain.Appointment, fallbackMinutes int) bool {
	if isSameDay(date, now) && date.Before(now) {
		return false
	}

	for _, appt := range appointments {
		if appt.ConflictsWith(date, fallbackMinutes) {
			return false
		}
	}

	return true
}

// isSameDay проверяет, что два момента относятся к одному календарному дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
