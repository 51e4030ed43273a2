package attendance

import (
	"time"
)

// Status is the attendance mark recorded once per staff member per day.
type Status string

const (
	StatusPresent Status = "present"
	StatusHalfDay Status = "half_day"
	StatusAbsent  Status = "absent"
)

// Statuses lists every status a staff member may submit.
var Statuses = []Status{StatusPresent, StatusHalfDay, StatusAbsent}

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusHalfDay, StatusAbsent:
		return true
	}
	return false
}

// Attendance is unique per (StaffID, Date); writes are upserts on that key.
type Attendance struct {
	ID        string
	StaffID   string
	Date      time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateString renders Date as YYYY-MM-DD without shifting time zones.
func (a Attendance) DateString() string {
	return a.Date.Format(DateLayout)
}
