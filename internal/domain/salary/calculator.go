package salary

import (
	"fmt"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/advance"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

var halfDayRate = decimal.New(5, -1)

// Input is everything Calculate needs. Attendance and Advances must already be
// restricted to the target staff member and month.
type Input struct {
	Month            int
	Year             int
	BaseSalary       decimal.Decimal
	TotalDaysInMonth int
	Attendance       []attendance.Attendance
	Advances         []advance.Advance
}

// Calculate pro-rates the monthly salary against the month's attendance and
// subtracts advances. Records with an unrecognised status are not counted.
// The net figure has no floor and may be negative.
func Calculate(in Input) (Breakdown, error) {
	if in.TotalDaysInMonth <= 0 {
		return Breakdown{}, fmt.Errorf("%w: got %d", ErrInvalidDaysInMonth, in.TotalDaysInMonth)
	}
	if in.BaseSalary.IsNegative() {
		return Breakdown{}, ErrNegativeBaseSalary
	}

	var present, half, absent int
	for _, rec := range in.Attendance {
		switch rec.Status {
		case attendance.StatusPresent:
			present++
		case attendance.StatusHalfDay:
			half++
		case attendance.StatusAbsent:
			absent++
		}
	}

	totalAdvances := decimal.Zero
	for _, adv := range in.Advances {
		if adv.Amount.IsNegative() {
			return Breakdown{}, fmt.Errorf("%w: advance %s is %s", ErrNegativeAdvance, adv.ID, adv.Amount)
		}
		totalAdvances = totalAdvances.Add(adv.Amount)
	}

	perDay := in.BaseSalary.Div(decimal.NewFromInt(int64(in.TotalDaysInMonth)))
	halfDayDeduction := decimal.NewFromInt(int64(half)).Mul(perDay).Mul(halfDayRate)
	absentDeduction := decimal.NewFromInt(int64(absent)).Mul(perDay)
	net := in.BaseSalary.Sub(halfDayDeduction).Sub(absentDeduction).Sub(totalAdvances)

	return Breakdown{
		Month:            in.Month,
		Year:             in.Year,
		BaseSalary:       in.BaseSalary,
		TotalDaysInMonth: in.TotalDaysInMonth,
		PresentDays:      present,
		HalfDays:         half,
		AbsentDays:       absent,
		PerDaySalary:     perDay,
		HalfDayDeduction: halfDayDeduction,
		AbsentDeduction:  absentDeduction,
		TotalAdvances:    totalAdvances,
		NetSalary:        net,
	}, nil
}
