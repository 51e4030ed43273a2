package advance

import (
	"context"
	"time"
)

type AdvanceRepository interface {
	// ListByStaffAndRange returns advances with from <= advance_date <= to.
	ListByStaffAndRange(ctx context.Context, staffID string, from, to time.Time) ([]Advance, error)
}
