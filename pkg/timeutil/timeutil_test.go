package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "08:00", want: 480},
		{name: "single digit hour", input: "8:30", want: 510},
		{name: "end of day", input: "23:59", want: 1439},
		{name: "empty string", input: "", wantErr: ErrInvalidFormat},
		{name: "out of range hour", input: "24:00", wantErr: ErrInvalidFormat},
		{name: "out of range minutes", input: "12:60", wantErr: ErrInvalidFormat},
		{name: "garbage", input: "abc", wantErr: ErrInvalidFormat},
		{name: "missing minutes", input: "12:", wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeToMinutes(tt.input)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FormatMinutes(0))
	assert.Equal(t, "08:00", FormatMinutes(480))
	assert.Equal(t, "23:59", FormatMinutes(1439))

	// Значения за пределами суток нормализуются
	assert.Equal(t, "00:00", FormatMinutes(MinutesPerDay))
	assert.Equal(t, "23:00", FormatMinutes(-60))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "08:15", "12:30", "23:59"} {
		minutes, err := ParseTimeToMinutes(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatMinutes(minutes))
	}
}

func TestValidateTimeRange(t *testing.T) {
	assert.NoError(t, ValidateTimeRange("08:00", "17:00"))

	assert.ErrorIs(t, ValidateTimeRange("17:00", "08:00"), ErrInvalidRange)
	assert.ErrorIs(t, ValidateTimeRange("08:00", "08:00"), ErrInvalidRange)
	assert.ErrorIs(t, ValidateTimeRange("bad", "17:00"), ErrInvalidFormat)
	assert.ErrorIs(t, ValidateTimeRange("08:00", "bad"), ErrInvalidFormat)
}

func TestValidateDayOfWeek(t *testing.T) {
	for day := 0; day <= 6; day++ {
		assert.NoError(t, ValidateDayOfWeek(day))
	}

	assert.ErrorIs(t, ValidateDayOfWeek(-1), ErrInvalidDay)
	assert.ErrorIs(t, ValidateDayOfWeek(7), ErrInvalidDay)
}

func TestIsTimeWithinRange(t *testing.T) {
	// Границы включительно
	assert.True(t, IsTimeWithinRange(480, 480, 1020))
	assert.True(t, IsTimeWithinRange(1020, 480, 1020))
	assert.True(t, IsTimeWithinRange(700, 480, 1020))

	assert.False(t, IsTimeWithinRange(479, 480, 1020))
	assert.False(t, IsTimeWithinRange(1021, 480, 1020))
}
