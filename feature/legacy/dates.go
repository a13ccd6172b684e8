package legacy

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout of every date column, e.g. "03/15/24 00:00:00".
// Two-digit years 69-99 resolve to 19xx and 00-68 to 20xx.
const DateLayout = "01/02/06 15:04:05"

// ParseDate parses a legacy date column.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid legacy date %q: %w", raw, err)
	}
	return t, nil
}

// InferBirthDate parses a birth date and undoes the two-digit-year century
// guess when it lands in the future: if the whole-year age at now is negative
// the date is moved back 100 years. The stored age column is not consulted.
func InferBirthDate(raw string, now time.Time) (time.Time, error) {
	dob, err := ParseDate(raw)
	if err != nil {
		return time.Time{}, err
	}

	if YearsBetween(dob, now) < 0 {
		dob = addYears(dob, -100)
	}
	return dob, nil
}

// YearsBetween returns the number of whole years from from to to, truncated
// toward zero. It is negative when to is before from.
func YearsBetween(from, to time.Time) int {
	if to.Before(from) {
		return -YearsBetween(to, from)
	}

	// Compare in a common location so wall-clock fields line up
	to = to.In(from.Location())

	years := to.Year() - from.Year()
	if to.Month() < from.Month() ||
		(to.Month() == from.Month() && to.Day() < from.Day()) ||
		(to.Month() == from.Month() && to.Day() == from.Day() && clock(to) < clock(from)) {
		years--
	}
	return years
}

func clock(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

// addYears shifts t by n years, clamping the day to the end of the target month.
func addYears(t time.Time, n int) time.Time {
	year := t.Year() + n
	day := t.Day()
	if last := daysIn(t.Month(), year); day > last {
		day = last
	}
	return time.Date(year, t.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
