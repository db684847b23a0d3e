package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("")
	assert.Error(t, err)
}

func TestTimeStringMinutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 570, TimeString("09:30").Minutes())
	assert.Equal(t, 1439, TimeString("23:59").Minutes())

	// Некорректное значение даёт 0, валидация выполняется раньше
	assert.Equal(t, 0, TimeString("bad").Minutes())
}

func TestTimeStringComparison(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("17:00"))
	assert.False(t, TimeString("08:00").IsBefore("08:00"))

	assert.True(t, TimeString("17:00").IsAfter("08:00"))
	assert.False(t, TimeString("17:00").IsAfter("17:00"))
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := TimeString("08:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)

	_, err = TimeString("00:30").AddMinutes(-60)
	assert.Error(t, err)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:15"))
	assert.Equal(t, TimeString("10:15"), ts)

	require.NoError(t, ts.Scan([]byte("11:45")))
	assert.Equal(t, TimeString("11:45"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeStringValue(t *testing.T) {
	v, err := TimeString("09:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:00", v)

	_, err = TimeString("nope").Value()
	assert.Error(t, err)
}
