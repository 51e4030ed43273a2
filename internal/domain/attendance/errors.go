package attendance

import "errors"

// Attendance domain errors
var (
	ErrTodayOnly        = errors.New("you can only mark attendance for today")
	ErrInvalidStatus    = errors.New("status must be one of: present, half_day, absent")
	ErrAttendanceFailed = errors.New("failed to mark attendance")
)
