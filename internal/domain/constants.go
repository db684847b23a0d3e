package domain

// Role роль вызывающего пользователя
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleClient   Role = "CLIENT"
)

// CanApplyDiscount возвращает true для ролей, которым разрешено указывать скидку
func (r Role) CanApplyDiscount() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Default configuration values
const (
	DefaultServiceIntervalMinutes = 30
	DefaultWorkStartTime          = "08:00"
	DefaultWorkEndTime            = "17:00"

	// Категория, создаваемая каждой новой компании
	DefaultCategoryName = "Общие услуги"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:mm
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
