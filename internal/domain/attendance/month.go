package attendance

import "time"

const DateLayout = "2006-01-02"

// DaysInMonth returns the number of calendar days (28-31) in the given month.
func DaysInMonth(year, month int) int {
	// Day 0 of the next month normalises to the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthWindow returns the inclusive [first, last] day range of a month as
// UTC midnights, suitable for DATE column comparisons.
func MonthWindow(year, month int) (first, last time.Time) {
	first = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last = time.Date(year, time.Month(month), DaysInMonth(year, month), 0, 0, 0, 0, time.UTC)
	return first, last
}

// ParseDate parses YYYY-MM-DD as a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
