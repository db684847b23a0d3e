package create_appointment

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("create_appointment: employee not found")

	// ErrServiceNotFound возвращается, когда одна из услуг не найдена или не активна
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrOutOfHours возвращается, когда время записи вне рабочего окна сотрудника
	ErrOutOfHours = errors.New("create_appointment: time is outside working hours")

	// ErrSlotUnavailable возвращается, когда слот конфликтует с существующей записью
	ErrSlotUnavailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidDiscount возвращается, когда скидка отрицательна или превышает сумму
	ErrInvalidDiscount = errors.New("create_appointment: invalid discount")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
