package schedule

import "errors"

var (
	// ErrWindowNotFound возвращается, когда рабочее окно не найдено
	ErrWindowNotFound = errors.New("schedule.repository: working hours not found")

	// ErrDuplicateWindow возвращается при нарушении уникальности окна
	ErrDuplicateWindow = errors.New("schedule.repository: working hours already exist")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
