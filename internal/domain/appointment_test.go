package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentConflictsWith(t *testing.T) {
	start := time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)
	appt := &Appointment{
		Date:                 start,
		TotalDurationMinutes: 60,
	}

	// Совпадение с началом записи
	assert.True(t, appt.ConflictsWith(start, 30))

	// Строго внутри интервала
	assert.True(t, appt.ConflictsWith(start.Add(30*time.Minute), 30))
	assert.True(t, appt.ConflictsWith(start.Add(59*time.Minute), 30))

	// Запись "впритык" к окончанию разрешена
	assert.False(t, appt.ConflictsWith(start.Add(60*time.Minute), 30))

	// До начала записи
	assert.False(t, appt.ConflictsWith(start.Add(-30*time.Minute), 30))
}

func TestAppointmentConflictsWith_FallbackDuration(t *testing.T) {
	start := time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)

	// Блокировка без длительности: используется интервал сотрудника
	appt := &Appointment{Date: start}

	assert.True(t, appt.ConflictsWith(start.Add(15*time.Minute), 30))
	assert.False(t, appt.ConflictsWith(start.Add(30*time.Minute), 30))
}

func TestAppointmentEnd(t *testing.T) {
	start := time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)

	withDuration := &Appointment{Date: start, TotalDurationMinutes: 90}
	assert.Equal(t, start.Add(90*time.Minute), withDuration.End(30))

	withoutDuration := &Appointment{Date: start}
	assert.Equal(t, start.Add(30*time.Minute), withoutDuration.End(30))
}

func TestAppointmentCanTransition(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusPending}).CanTransition())

	assert.False(t, (&Appointment{Status: StatusCompleted}).CanTransition())
	assert.False(t, (&Appointment{Status: StatusCancelled}).CanTransition())
	assert.False(t, (&Appointment{Status: StatusConfirmed}).CanTransition())
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "CONFIRMED", "CANCELLED", "COMPLETED"} {
		status, ok := ValidStatus(s)
		assert.True(t, ok)
		assert.Equal(t, AppointmentStatus(s), status)
	}

	_, ok := ValidStatus("DONE")
	assert.False(t, ok)
}
