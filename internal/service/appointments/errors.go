package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник записи не найден
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrAccessDenied возвращается, когда компания вызывающего не владеет записью
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidState возвращается при переходе статуса не из PENDING
	ErrInvalidState = errors.New("appointment is not pending")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
