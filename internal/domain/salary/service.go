package salary

import "context"

type SalaryService interface {
	GetBreakdown(ctx context.Context, staffID string, req BreakdownRequest) (BreakdownResponse, error)
}
