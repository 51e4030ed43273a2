package salary

import (
	"context"
	"time"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/advance"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/salary"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/metrics"
)

type SalaryServiceImpl struct {
	staffRepo      staff.StaffRepository
	attendanceRepo attendance.AttendanceRepository
	advanceRepo    advance.AdvanceRepository
	metrics        *metrics.Metrics
	location       *time.Location
	now            func() time.Time
}

func NewSalaryService(
	staffRepository staff.StaffRepository,
	attendanceRepository attendance.AttendanceRepository,
	advanceRepository advance.AdvanceRepository,
	m *metrics.Metrics,
	loc *time.Location,
) salary.SalaryService {
	if loc == nil {
		loc = time.Local
	}
	return &SalaryServiceImpl{
		staffRepo:      staffRepository,
		attendanceRepo: attendanceRepository,
		advanceRepo:    advanceRepository,
		metrics:        m,
		location:       loc,
		now:            time.Now,
	}
}

// GetBreakdown implements salary.SalaryService. Every call reloads the
// profile, attendance and advances and recomputes; nothing is kept between
// calls. Storage failures are returned and never reported as an empty month.
func (s *SalaryServiceImpl) GetBreakdown(ctx context.Context, staffID string, req salary.BreakdownRequest) (salary.BreakdownResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.BreakdownResponse{}, err
	}

	year, month := req.Year, req.Month
	if year == 0 {
		year, month = attendance.CurrentPeriod(s.now(), s.location)
	}

	profile, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return salary.BreakdownResponse{}, err
	}

	first, last := attendance.MonthWindow(year, month)
	records, err := s.attendanceRepo.ListByStaffAndRange(ctx, staffID, first, last)
	if err != nil {
		return salary.BreakdownResponse{}, err
	}
	advances, err := s.advanceRepo.ListByStaffAndRange(ctx, staffID, first, last)
	if err != nil {
		return salary.BreakdownResponse{}, err
	}

	breakdown, err := salary.Calculate(salary.Input{
		Month:            month,
		Year:             year,
		BaseSalary:       profile.MonthlySalary,
		TotalDaysInMonth: attendance.DaysInMonth(year, month),
		Attendance:       records,
		Advances:         advances,
	})
	if err != nil {
		return salary.BreakdownResponse{}, err
	}
	s.metrics.SalaryComputed()

	return salary.NewBreakdownResponse(breakdown, advances), nil
}
