package schedule

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("company not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrCategoryNotFound возвращается, когда категория не найдена
	ErrCategoryNotFound = errors.New("category not found")

	// ErrWindowNotFound возвращается, когда рабочее окно не найдено
	ErrWindowNotFound = errors.New("working hours not found")

	// ErrDuplicateWindow возвращается, когда окно на этот день уже существует
	ErrDuplicateWindow = errors.New("working hours already exist for this day")

	// ErrAccessDenied возвращается при попытке изменить чужое расписание
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
