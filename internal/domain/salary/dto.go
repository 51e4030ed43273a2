package salary

import (
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/advance"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/validator"
)

// BreakdownRequest selects a month. Zero values mean the current month.
type BreakdownRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *BreakdownRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year != 0 && !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1970 and 9999",
		})
	}
	if r.Month != 0 && !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if (r.Year == 0) != (r.Month == 0) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "year and month must be provided together",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BreakdownResponse renders money with two decimals; the domain value keeps
// full precision.
type BreakdownResponse struct {
	Month            int                       `json:"month"`
	Year             int                       `json:"year"`
	BaseSalary       string                    `json:"base_salary"`
	TotalDaysInMonth int                       `json:"total_days"`
	PresentDays      int                       `json:"present_days"`
	HalfDays         int                       `json:"half_days"`
	AbsentDays       int                       `json:"absent_days"`
	PerDaySalary     string                    `json:"per_day_salary"`
	HalfDayDeduction string                    `json:"half_day_deduction"`
	AbsentDeduction  string                    `json:"absent_deduction"`
	TotalAdvances    string                    `json:"total_advances"`
	NetSalary        string                    `json:"net_salary"`
	Advances         []advance.AdvanceResponse `json:"advances"`
}

func NewBreakdownResponse(b Breakdown, advances []advance.Advance) BreakdownResponse {
	items := make([]advance.AdvanceResponse, 0, len(advances))
	for _, a := range advances {
		items = append(items, advance.NewAdvanceResponse(a))
	}
	return BreakdownResponse{
		Month:            b.Month,
		Year:             b.Year,
		BaseSalary:       b.BaseSalary.StringFixed(2),
		TotalDaysInMonth: b.TotalDaysInMonth,
		PresentDays:      b.PresentDays,
		HalfDays:         b.HalfDays,
		AbsentDays:       b.AbsentDays,
		PerDaySalary:     b.PerDaySalary.StringFixed(2),
		HalfDayDeduction: b.HalfDayDeduction.StringFixed(2),
		AbsentDeduction:  b.AbsentDeduction.StringFixed(2),
		TotalAdvances:    b.TotalAdvances.StringFixed(2),
		NetSalary:        b.NetSalary.StringFixed(2),
		Advances:         items,
	}
}
