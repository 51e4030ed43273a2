package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advance is money pre-paid to a staff member and deducted from the net
// salary of the month it was paid in.
type Advance struct {
	ID          string
	StaffID     string
	AdvanceDate time.Time
	Amount      decimal.Decimal
	Reason      *string
	CreatedAt   time.Time
}
