package attendance

import "time"

// Gate enforces the same-day write policy: attendance may only be marked for
// the current calendar day in the portal's local time zone.
type Gate struct {
	Location *time.Location
}

func NewGate(loc *time.Location) Gate {
	if loc == nil {
		loc = time.Local
	}
	return Gate{Location: loc}
}

// Today returns the current calendar day as YYYY-MM-DD.
func (g Gate) Today(now time.Time) string {
	return now.In(g.location()).Format(DateLayout)
}

// Check rejects any selected date that is not today. The comparison is on
// the YYYY-MM-DD string, so backdating and future-dating both fail.
func (g Gate) Check(selectedDate string, now time.Time) error {
	if selectedDate != g.Today(now) {
		return ErrTodayOnly
	}
	return nil
}

func (g Gate) location() *time.Location {
	if g.Location == nil {
		return time.Local
	}
	return g.Location
}
