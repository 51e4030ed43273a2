package salary

import "errors"

var (
	ErrInvalidDaysInMonth = errors.New("total days in month must be positive")
	ErrNegativeBaseSalary = errors.New("base salary must not be negative")
	ErrNegativeAdvance    = errors.New("advance amount must not be negative")
)
