package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/metrics"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	metrics *metrics.Metrics
	gate    attendance.Gate
	now     func() time.Time
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, m *metrics.Metrics, loc *time.Location) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		metrics:              m,
		gate:                 attendance.NewGate(loc),
		now:                  time.Now,
	}
}

// Mark implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Mark(ctx context.Context, staffID string, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// Same-day policy is checked before anything touches storage.
	if err := a.gate.Check(req.Date, a.now()); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, err := attendance.ParseDate(req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	saved, err := a.AttendanceRepository.Upsert(ctx, attendance.Attendance{
		StaffID: staffID,
		Date:    date,
		Status:  attendance.Status(req.Status),
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("%w: %w", attendance.ErrAttendanceFailed, err)
	}

	a.metrics.AttendanceMarked(string(saved.Status))
	slog.Info("attendance marked", "staff_id", staffID, "date", saved.DateString(), "status", saved.Status)

	return attendance.NewAttendanceResponse(saved), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, staffID string) (*attendance.AttendanceResponse, error) {
	today, err := attendance.ParseDate(a.gate.Today(a.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse today: %w", err)
	}

	record, err := a.AttendanceRepository.GetByStaffAndDate(ctx, staffID, today)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	resp := attendance.NewAttendanceResponse(*record)
	return &resp, nil
}

// GetHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetHistory(ctx context.Context, staffID string, filter attendance.HistoryFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.ListRecentByStaff(ctx, staffID, filter.Limit)
	if err != nil {
		return nil, err
	}

	return toResponses(records), nil
}

// GetMonth implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonth(ctx context.Context, staffID string, req attendance.MonthRequest) (attendance.MonthAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthAttendanceResponse{}, err
	}

	now := a.now()
	year, month := req.Year, req.Month
	if year == 0 {
		year, month = attendance.CurrentPeriod(now, a.gate.Location)
	}

	first, last := attendance.MonthWindow(year, month)
	records, err := a.AttendanceRepository.ListByStaffAndRange(ctx, staffID, first, last)
	if err != nil {
		return attendance.MonthAttendanceResponse{}, err
	}

	return attendance.MonthAttendanceResponse{
		Year:        year,
		Month:       month,
		Attendances: toResponses(records),
		Grid:        attendance.BuildMonthGrid(year, month, records, a.gate.Today(now)),
	}, nil
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, attendance.NewAttendanceResponse(r))
	}
	return out
}
