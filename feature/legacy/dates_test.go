package legacy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("03/15/24 00:00:00")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 15), got)

	got, err = ParseDate("07/01/85 00:00:00")
	require.NoError(t, err)
	assert.Equal(t, 1985, got.Year())

	_, err = ParseDate("2024-03-15")
	assert.Error(t, err)
}

func TestInferBirthDate(t *testing.T) {
	now := date(2026, time.October, 18)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"past date unchanged", "05/20/01 00:00:00", date(2001, time.May, 20)},
		{"future year moved back a century", "05/20/50 00:00:00", date(1950, time.May, 20)},
		{"two-digit year 69 is already 1969", "01/01/69 00:00:00", date(1969, time.January, 1)},
		{"birthday later this year stays", "12/01/26 00:00:00", date(2026, time.December, 1)},
		{"just over a year ahead is corrected", "11/01/27 00:00:00", date(1927, time.November, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InferBirthDate(tt.raw, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInferBirthDate_LeapDayClamp(t *testing.T) {
	// Feb 29 of a leap year shifted onto a common year lands on Feb 28.
	assert.Equal(t, date(1999, time.February, 28), addYears(date(2000, time.February, 29), -1))
	assert.Equal(t, date(1960, time.February, 29), addYears(date(2060, time.February, 29), -100))
}

func TestInferBirthDate_Invalid(t *testing.T) {
	_, err := InferBirthDate("not a date", time.Now())
	assert.Error(t, err)
}

func TestYearsBetween(t *testing.T) {
	tests := []struct {
		from, to time.Time
		want     int
	}{
		{date(2000, time.May, 20), date(2026, time.May, 19), 25},
		{date(2000, time.May, 20), date(2026, time.May, 20), 26},
		{date(2030, time.January, 1), date(2026, time.October, 18), -3},
		{date(2026, time.December, 1), date(2026, time.October, 18), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, YearsBetween(tt.from, tt.to), "%s -> %s", tt.from.Format("2006-01-02"), tt.to.Format("2006-01-02"))
	}
}
