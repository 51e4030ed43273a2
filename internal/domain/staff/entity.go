package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

// Staff is the employee profile linked one-to-one with a login user.
type Staff struct {
	ID            string
	UserID        string
	FullName      string
	Designation   string
	MonthlySalary decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
