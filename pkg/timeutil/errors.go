package timeutil

import "errors"

var (
	// ErrInvalidFormat возвращается, когда строка времени не соответствует формату "HH:mm"
	ErrInvalidFormat = errors.New("timeutil: invalid time format")

	// ErrInvalidRange возвращается, когда начало диапазона не раньше его конца
	ErrInvalidRange = errors.New("timeutil: invalid time range")

	// ErrInvalidDay возвращается, когда день недели вне диапазона [0, 6]
	ErrInvalidDay = errors.New("timeutil: invalid day of week")
)
