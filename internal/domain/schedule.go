package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// DailyWindow рабочее окно на один день недели
type DailyWindow struct {
	DayOfWeek int // 0 = воскресенье ... 6 = суббота
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Contains возвращает true, если окно other полностью содержится в w
func (w DailyWindow) Contains(other DailyWindow) bool {
	return other.StartTime.Minutes() >= w.StartTime.Minutes() &&
		other.EndTime.Minutes() <= w.EndTime.Minutes()
}

// EmployeeCategoryWorkingHour рабочее окно сотрудника в рамках конкретной категории.
// Уникально по (EmployeeID, CategoryID, DayOfWeek), высший приоритет при
// запросах, все услуги которых принадлежат этой категории.
type EmployeeCategoryWorkingHour struct {
	ID         int64
	EmployeeID int64
	CategoryID int64
	DayOfWeek  int
	StartTime  types.TimeString
	EndTime    types.TimeString
}

// Window возвращает рабочее окно записи
func (h EmployeeCategoryWorkingHour) Window() DailyWindow {
	return DailyWindow{DayOfWeek: h.DayOfWeek, StartTime: h.StartTime, EndTime: h.EndTime}
}

// Schedule полный набор рабочих окон, применимых к сотруднику:
// окна компании, персональные окна сотрудника и окна по категориям.
type Schedule struct {
	CompanyWindows  []DailyWindow
	EmployeeWindows []DailyWindow
	CategoryWindows []EmployeeCategoryWorkingHour
}

// ResolveWindow вычисляет действующее рабочее окно по строгому приоритету:
// категория -> сотрудник -> компания.
//
// Ключевая особенность: "настроенность" уровня сама по себе авторитетна.
// Если у сотрудника есть ХОТЬ ОДНО окно по категориям и запрос привязан к
// категориям, ответ даёт только категорийный уровень — отсутствие окна на
// нужный день означает "не работает", без проваливания на нижние уровни.
// Аналогично для персональных окон сотрудника относительно окон компании.
func (s Schedule) ResolveWindow(categoryIDs []int64, dayOfWeek int) (DailyWindow, bool) {
	if len(categoryIDs) > 0 && len(s.CategoryWindows) > 0 {
		for _, h := range s.CategoryWindows {
			if h.DayOfWeek != dayOfWeek {
				continue
			}
			for _, id := range categoryIDs {
				if h.CategoryID == id {
					return h.Window(), true
				}
			}
		}
		return DailyWindow{}, false
	}

	if len(s.EmployeeWindows) > 0 {
		return findWindowForDay(s.EmployeeWindows, dayOfWeek)
	}

	return findWindowForDay(s.CompanyWindows, dayOfWeek)
}

func findWindowForDay(windows []DailyWindow, dayOfWeek int) (DailyWindow, bool) {
	for _, w := range windows {
		if w.DayOfWeek == dayOfWeek {
			return w, true
		}
	}
	return DailyWindow{}, false
}

// ClipWindow подрезает окно child под границы окна parent того же дня:
// новое начало = max(child.start, parent.start), новый конец = min(child.end, parent.end).
//
// Возвращает (результат, true), если окно изменилось. Если после подрезки
// интервал вырождается (start >= end), child возвращается без изменений —
// консервативное поведение, запись остаётся на руках у владельца расписания.
func ClipWindow(child, parent DailyWindow) (DailyWindow, bool) {
	if parent.Contains(child) {
		return child, false
	}

	start := child.StartTime.Minutes()
	end := child.EndTime.Minutes()

	if parent.StartTime.Minutes() > start {
		start = parent.StartTime.Minutes()
	}
	if parent.EndTime.Minutes() < end {
		end = parent.EndTime.Minutes()
	}

	if start >= end {
		return child, false
	}

	return DailyWindow{
		DayOfWeek: child.DayOfWeek,
		StartTime: types.NewTimeStringFromMinutes(start),
		EndTime:   types.NewTimeStringFromMinutes(end),
	}, true
}
