package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("update_appointment: employee not found")

	// ErrServiceNotFound возвращается, когда одна из услуг не найдена или не активна
	ErrServiceNotFound = errors.New("update_appointment: service not found")

	// ErrOutOfHours возвращается, когда время записи вне рабочего окна сотрудника
	ErrOutOfHours = errors.New("update_appointment: time is outside working hours")

	// ErrSlotUnavailable возвращается, когда слот конфликтует с существующей записью
	ErrSlotUnavailable = errors.New("update_appointment: slot is not available")

	// ErrInvalidDiscount возвращается, когда скидка отрицательна или превышает сумму
	ErrInvalidDiscount = errors.New("update_appointment: invalid discount")

	// ErrInvalidState возвращается при попытке изменить запись не в статусе PENDING
	ErrInvalidState = errors.New("update_appointment: appointment is not pending")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("update_appointment: invalid appointment date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
