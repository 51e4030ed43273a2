package salary

import "github.com/shopspring/decimal"

// Breakdown is the derived salary figure for one staff member and month.
// It is recomputed on every request and never persisted.
type Breakdown struct {
	Month            int
	Year             int
	BaseSalary       decimal.Decimal
	TotalDaysInMonth int
	PresentDays      int
	HalfDays         int
	AbsentDays       int
	PerDaySalary     decimal.Decimal
	HalfDayDeduction decimal.Decimal
	AbsentDeduction  decimal.Decimal
	TotalAdvances    decimal.Decimal
	NetSalary        decimal.Decimal
}
