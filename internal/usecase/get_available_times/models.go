package get_available_times

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение свободного времени сотрудника
type Request struct {
	UserID     int64     // ID пользователя (для логирования, не влияет на результат)
	EmployeeID int64     // ID сотрудника
	Date       time.Time // Дата, на которую запрашиваются слоты (без времени)
	ServiceIDs []int64   // Запрошенные услуги; определяют длительность и категорию
	BlocksOnly bool      // Учитывать только блокировки сотрудника, без записей клиентов
}

// Response модель ответа со списком свободного времени
type Response struct {
	Date       time.Time          // Дата запроса
	EmployeeID int64              // ID сотрудника
	ServiceIDs []int64            // Запрошенные услуги
	Slots      []types.TimeString // Свободное время по возрастанию ("HH:mm")
}
