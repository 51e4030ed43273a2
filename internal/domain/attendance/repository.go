package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods are scoped by staffID.
type AttendanceRepository interface {
	// Upsert writes the record keyed by (staff_id, date); an existing row
	// has its status and updated_at overwritten.
	Upsert(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByStaffAndDate returns nil, nil when no record exists.
	GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (*Attendance, error)

	// ListByStaffAndRange returns records with from <= date <= to, oldest first.
	ListByStaffAndRange(ctx context.Context, staffID string, from, to time.Time) ([]Attendance, error)

	// ListRecentByStaff returns up to limit records, newest first.
	ListRecentByStaff(ctx context.Context, staffID string, limit int) ([]Attendance, error)
}
