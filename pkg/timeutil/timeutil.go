// Package timeutil содержит чистые функции для работы со временем в формате "HH:mm".
// Вся арифметика ведётся в минутах от начала суток, без учёта таймзон.
package timeutil

import (
	"fmt"
	"regexp"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// timePattern формат "HH:mm": часы 0-23, минуты 0-59
var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ParseTimeToMinutes конвертирует строку "HH:mm" в минуты от начала суток.
// Возвращает ErrInvalidFormat, если строка пустая или не соответствует формату.
func ParseTimeToMinutes(t string) (int, error) {
	if t == "" {
		return 0, fmt.Errorf("%w: empty time string", ErrInvalidFormat)
	}

	if !timePattern.MatchString(t) {
		return 0, fmt.Errorf("%w: %q does not match HH:mm", ErrInvalidFormat, t)
	}

	var hours, minutes int
	if _, err := fmt.Sscanf(t, "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, t, err)
	}

	return hours*60 + minutes, nil
}

// FormatMinutes конвертирует минуты от начала суток обратно в строку "HH:mm".
// Значения за пределами суток нормализуются по модулю.
func FormatMinutes(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidateTimeRange проверяет, что start строго раньше end (в минутах).
// Возвращает ErrInvalidFormat при некорректных строках и ErrInvalidRange при start >= end.
func ValidateTimeRange(start, end string) error {
	startMin, err := ParseTimeToMinutes(start)
	if err != nil {
		return err
	}

	endMin, err := ParseTimeToMinutes(end)
	if err != nil {
		return err
	}

	if startMin >= endMin {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidRange, start, end)
	}

	return nil
}

// ValidateDayOfWeek проверяет, что день недели в диапазоне [0, 6] (0 = воскресенье).
func ValidateDayOfWeek(day int) error {
	if day < 0 || day > 6 {
		return fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	return nil
}

// IsTimeWithinRange проверяет, что t находится внутри [lo, hi] включительно.
// Все аргументы в минутах от начала суток. Чистая функция без побочных эффектов.
func IsTimeWithinRange(t, lo, hi int) bool {
	return t >= lo && t <= hi
}
