package get_available_times

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// generateAvailableSlots перебирает кандидатов от начала до конца рабочего окна
// включительно с шагом step и оставляет только свободные.
// Итерация идёт по возрастанию времени, поэтому результат упорядочен по построению.
func generateAvailableSlots(
	window domain.DailyWindow,
	step int,
	requestDate time.Time,
	now time.Time,
	appointments []*domain.Appointment,
) []types.TimeString {
	startMinute := window.StartTime.Minutes()
	endMinute := window.EndTime.Minutes()

	dayStart := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	slots := make([]types.TimeString, 0)
	for minute := startMinute; minute <= endMinute; minute += step {
		candidate := dayStart.Add(time.Duration(minute) * time.Minute)
		if isSlotAvailable(candidate, now, appointments, step) {
			slots = append(slots, types.NewTimeStringFromMinutes(minute))
		}
	}

	return slots
}

// isSlotAvailable проверяет доступность кандидата candidate.
//
// Кандидат отклоняется, если он приходится на сегодняшний день и уже прошёл.
// Конфликт с существующей записью есть, если кандидат совпадает с её началом
// или лежит строго внутри интервала (start, end); кандидат, равный концу
// записи, свободен — бронирование "впритык" разрешено.
func isSlotAvailable(candidate time.Time, now time.Time, appointments []*domain.Appointment, fallbackMinutes int) bool {
	if isSameDay(candidate, now) && candidate.Before(now) {
		return false
	}

	for _, appt := range appointments {
		if appt.ConflictsWith(candidate, fallbackMinutes) {
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
