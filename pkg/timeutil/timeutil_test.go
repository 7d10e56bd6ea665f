package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := Date(2024, time.May, 4)

	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "04/05/2024", want: want},
		{input: "4/5/2024", want: want},
		{input: "04-05-2024", want: want},
		{input: "2024-05-04", want: want},
		{input: "  04/05/2024 ", want: want},
		{input: "", wantErr: true},
		{input: "31/02/2024", wantErr: true},
		{input: "amanhã", wantErr: true},
		{input: "2024/05/04", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseDate_Today(t *testing.T) {
	saved := clock
	t.Cleanup(func() { clock = saved })
	clock = func() time.Time {
		return time.Date(2024, time.December, 31, 23, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	}

	got, err := ParseDate("Hoje")
	require.NoError(t, err)
	assert.Equal(t, Date(2024, time.December, 31), got)
}

func TestFormat(t *testing.T) {
	d := Date(2024, time.May, 4)

	assert.Equal(t, "04/05/2024", FormatDate(d))
	assert.Equal(t, "-", FormatDate(time.Time{}))
	assert.Equal(t, "2024-05-04", FormatISO(d))
	assert.Equal(t, "sábado, 4 de maio de 2024", FormatLong(d))
	assert.Equal(t, "março", MonthName(time.March))
	assert.Empty(t, MonthName(13))
	assert.Empty(t, WeekdayName(9))
}

func TestDayArithmetic(t *testing.T) {
	a := time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 1, 0, 1, 0, 0, time.UTC)

	assert.True(t, IsSameDay(a, b))
	assert.Equal(t, 29, DaysBetween(Date(2024, time.February, 1), Date(2024, time.March, 1)))
	assert.Equal(t, -1, DaysBetween(Date(2024, time.March, 2), Date(2024, time.March, 1)))
}
