// Package types содержит общие типы-значения, переиспользуемые между слоями.
package types

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/timeutil"
)

// TimeString время суток в формате "HH:mm" (например, "09:30").
// Хранится как строка, сравнивается через минуты от начала суток.
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из минут от начала суток
func NewTimeStringFromMinutes(minutes int) TimeString {
	return TimeString(timeutil.FormatMinutes(minutes))
}

// Validate проверяет соответствие формату "HH:mm"
func (t TimeString) Validate() error {
	_, err := timeutil.ParseTimeToMinutes(string(t))
	return err
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes возвращает значение в минутах от начала суток.
// Для некорректного значения возвращает 0 — валидация должна выполняться заранее.
func (t TimeString) Minutes() int {
	minutes, err := timeutil.ParseTimeToMinutes(string(t))
	if err != nil {
		return 0
	}
	return minutes
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// AddMinutes возвращает новое время, сдвинутое на minutes минут вперед.
// Возвращает ошибку при выходе за пределы суток.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total := t.Minutes() + minutes
	if total < 0 || total > timeutil.MinutesPerDay {
		return "", fmt.Errorf("time %s + %d minutes is out of day bounds", t, minutes)
	}
	return TimeString(timeutil.FormatMinutes(total)), nil
}

// String реализует fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = TimeString(v)
	case []byte:
		*t = TimeString(v)
	case time.Time:
		*t = NewTimeString(v)
	case nil:
		*t = ""
	default:
		return fmt.Errorf("types.TimeString: cannot scan %T", src)
	}
	return nil
}
