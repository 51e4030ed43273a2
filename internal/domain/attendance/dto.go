package attendance

import (
	"strings"

	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/validator"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkAttendanceRequest struct {
	Date   string `json:"date"` // YYYY-MM-DD, must be today
	Status string `json:"status"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Date = strings.TrimSpace(r.Date)
	r.Status = strings.TrimSpace(r.Status)

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidStatus.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryFilter struct {
	Limit int `json:"limit"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = DefaultHistoryLimit
	}
	if f.Limit > MaxHistoryLimit {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MonthRequest selects a calendar month. Zero values mean "current month".
type MonthRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year != 0 && !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1970 and 9999",
		})
	}
	if r.Month != 0 && !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if (r.Year == 0) != (r.Month == 0) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "year and month must be provided together",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID        string `json:"id"`
	StaffID   string `json:"staff_id"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:        a.ID,
		StaffID:   a.StaffID,
		Date:      a.DateString(),
		Status:    string(a.Status),
		UpdatedAt: a.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

type MonthAttendanceResponse struct {
	Year        int                  `json:"year"`
	Month       int                  `json:"month"`
	Attendances []AttendanceResponse `json:"attendances"`
	Grid        MonthGrid            `json:"grid"`
}
