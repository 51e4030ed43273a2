package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations.
// The caller resolves staffID from the authenticated session.
type AttendanceService interface {
	// Mark records today's attendance; any other date fails with ErrTodayOnly.
	Mark(ctx context.Context, staffID string, req MarkAttendanceRequest) (AttendanceResponse, error)

	// GetToday returns nil when nothing has been marked today.
	GetToday(ctx context.Context, staffID string) (*AttendanceResponse, error)

	GetHistory(ctx context.Context, staffID string, filter HistoryFilter) ([]AttendanceResponse, error)

	GetMonth(ctx context.Context, staffID string, req MonthRequest) (MonthAttendanceResponse, error)
}
