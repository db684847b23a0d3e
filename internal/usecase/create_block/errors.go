package create_block

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("create_block: employee not found")

	// ErrSlotUnavailable возвращается, когда интервал блокировки конфликтует с записью
	ErrSlotUnavailable = errors.New("create_block: slot is not available")

	// ErrInvalidRange возвращается, когда конец блокировки не позже её начала
	ErrInvalidRange = errors.New("create_block: end date must be after start date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_block: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_block: internal error")
)
