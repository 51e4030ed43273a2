package attendance

import (
	"fmt"
	"time"
)

// DayCell describes one day of the month grid.
type DayCell struct {
	Date    string  `json:"date"`
	Day     int     `json:"day"`
	Status  *Status `json:"status,omitempty"`
	IsToday bool    `json:"is_today"`
}

// MonthGrid is the calendar view of a month. LeadingBlanks is the weekday of
// the first day (Sunday = 0): the number of empty cells before day 1.
type MonthGrid struct {
	Year          int       `json:"year"`
	Month         int       `json:"month"`
	LeadingBlanks int       `json:"leading_blanks"`
	Days          []DayCell `json:"days"`
}

// BuildMonthGrid maps a month and a sparse set of attendance records onto
// one cell per calendar day. today is YYYY-MM-DD in the portal time zone.
// If a day somehow carries several records, the most recently updated wins.
func BuildMonthGrid(year, month int, records []Attendance, today string) MonthGrid {
	byDate := make(map[string]Attendance, len(records))
	for _, rec := range records {
		key := rec.DateString()
		if prev, ok := byDate[key]; ok && prev.UpdatedAt.After(rec.UpdatedAt) {
			continue
		}
		byDate[key] = rec
	}

	first, _ := MonthWindow(year, month)
	days := DaysInMonth(year, month)

	grid := MonthGrid{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]DayCell, 0, days),
	}

	for day := 1; day <= days; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		cell := DayCell{
			Date:    date,
			Day:     day,
			IsToday: date == today,
		}
		if rec, ok := byDate[date]; ok {
			status := rec.Status
			cell.Status = &status
		}
		grid.Days = append(grid.Days, cell)
	}

	return grid
}

// CurrentPeriod returns the year and month of now in loc.
func CurrentPeriod(now time.Time, loc *time.Location) (year, month int) {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	return local.Year(), int(local.Month())
}
