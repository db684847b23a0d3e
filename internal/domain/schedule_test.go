package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func window(day int, start, end string) DailyWindow {
	return DailyWindow{
		DayOfWeek: day,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func TestResolveWindow_CompanyFallback(t *testing.T) {
	s := Schedule{
		CompanyWindows: []DailyWindow{
			window(1, "08:00", "17:00"),
			window(2, "09:00", "18:00"),
		},
	}

	w, ok := s.ResolveWindow(nil, 1)
	require.True(t, ok)
	assert.Equal(t, window(1, "08:00", "17:00"), w)

	// Нет окна на воскресенье
	_, ok = s.ResolveWindow(nil, 0)
	assert.False(t, ok)
}

func TestResolveWindow_EmployeeOverridesCompany(t *testing.T) {
	s := Schedule{
		CompanyWindows: []DailyWindow{
			window(1, "08:00", "17:00"),
			window(2, "08:00", "17:00"),
		},
		EmployeeWindows: []DailyWindow{
			window(1, "10:00", "14:00"),
		},
	}

	w, ok := s.ResolveWindow(nil, 1)
	require.True(t, ok)
	assert.Equal(t, window(1, "10:00", "14:00"), w)

	// Персональные окна настроены, значит отсутствие окна на вторник
	// означает "не работает", проваливания на уровень компании нет
	_, ok = s.ResolveWindow(nil, 2)
	assert.False(t, ok)
}

func TestResolveWindow_CategoryOverridesEmployee(t *testing.T) {
	s := Schedule{
		CompanyWindows: []DailyWindow{
			window(1, "08:00", "17:00"),
		},
		EmployeeWindows: []DailyWindow{
			window(1, "09:00", "16:00"),
		},
		CategoryWindows: []EmployeeCategoryWorkingHour{
			{EmployeeID: 1, CategoryID: 5, DayOfWeek: 1, StartTime: "12:00", EndTime: "15:00"},
		},
	}

	// Запрос с категорией 5: категорийный уровень авторитетен
	w, ok := s.ResolveWindow([]int64{5}, 1)
	require.True(t, ok)
	assert.Equal(t, window(1, "12:00", "15:00"), w)

	// Категорийные окна настроены, но на вторник окна нет: не работает
	_, ok = s.ResolveWindow([]int64{5}, 2)
	assert.False(t, ok)

	// Категория без окна на понедельник тоже означает "не работает"
	_, ok = s.ResolveWindow([]int64{9}, 1)
	assert.False(t, ok)

	// Запрос без категорий игнорирует категорийный уровень
	w, ok = s.ResolveWindow(nil, 1)
	require.True(t, ok)
	assert.Equal(t, window(1, "09:00", "16:00"), w)
}

func TestDailyWindowContains(t *testing.T) {
	parent := window(1, "08:00", "17:00")

	assert.True(t, parent.Contains(window(1, "08:00", "17:00")))
	assert.True(t, parent.Contains(window(1, "10:00", "12:00")))
	assert.False(t, parent.Contains(window(1, "07:00", "12:00")))
	assert.False(t, parent.Contains(window(1, "10:00", "18:00")))
}

func TestClipWindow(t *testing.T) {
	tests := []struct {
		name        string
		child       DailyWindow
		parent      DailyWindow
		want        DailyWindow
		wantChanged bool
	}{
		{
			name:        "contained window untouched",
			child:       window(2, "10:00", "14:00"),
			parent:      window(2, "08:00", "17:00"),
			want:        window(2, "10:00", "14:00"),
			wantChanged: false,
		},
		{
			name:        "start clipped",
			child:       window(2, "07:00", "14:00"),
			parent:      window(2, "08:00", "17:00"),
			want:        window(2, "08:00", "14:00"),
			wantChanged: true,
		},
		{
			name:        "end clipped",
			child:       window(2, "10:00", "19:00"),
			parent:      window(2, "08:00", "17:00"),
			want:        window(2, "10:00", "17:00"),
			wantChanged: true,
		},
		{
			name:        "both sides clipped",
			child:       window(2, "06:00", "20:00"),
			parent:      window(2, "08:00", "17:00"),
			want:        window(2, "08:00", "17:00"),
			wantChanged: true,
		},
		{
			name:        "disjoint window kept as is",
			child:       window(2, "18:00", "20:00"),
			parent:      window(2, "08:00", "17:00"),
			want:        window(2, "18:00", "20:00"),
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := ClipWindow(tt.child, tt.parent)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.want, got)
		})
	}
}
