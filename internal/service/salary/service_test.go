package salary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/advance"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/salary"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/metrics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStaffRepo struct {
	staff map[string]staff.Staff
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	s, ok := f.staff[id]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return s, nil
}

func (f *fakeStaffRepo) GetByUserID(ctx context.Context, userID string) (staff.Staff, error) {
	for _, s := range f.staff {
		if s.UserID == userID {
			return s, nil
		}
	}
	return staff.Staff{}, staff.ErrStaffNotFound
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records []attendance.Attendance
	calls   int
	err     error
	from    time.Time
	to      time.Time
}

func (f *fakeAttendanceRepo) ListByStaffAndRange(ctx context.Context, staffID string, from, to time.Time) ([]attendance.Attendance, error) {
	f.calls++
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.StaffID == staffID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeAdvanceRepo struct {
	advances []advance.Advance
	err      error
}

func (f *fakeAdvanceRepo) ListByStaffAndRange(ctx context.Context, staffID string, from, to time.Time) ([]advance.Advance, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []advance.Advance
	for _, a := range f.advances {
		if a.StaffID == staffID && !a.AdvanceDate.Before(from) && !a.AdvanceDate.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	svc        *SalaryServiceImpl
	staff      *fakeStaffRepo
	attendance *fakeAttendanceRepo
	advances   *fakeAdvanceRepo
}

func newFixture() *fixture {
	var records []attendance.Attendance
	for d := 1; d <= 28; d++ {
		records = append(records, attendance.Attendance{StaffID: "staff-1", Date: date(2024, 6, d), Status: attendance.StatusPresent})
	}
	records = append(records,
		attendance.Attendance{StaffID: "staff-1", Date: date(2024, 6, 29), Status: attendance.StatusHalfDay},
		attendance.Attendance{StaffID: "staff-1", Date: date(2024, 6, 30), Status: attendance.StatusAbsent},
		attendance.Attendance{StaffID: "staff-1", Date: date(2024, 7, 1), Status: attendance.StatusAbsent},
		attendance.Attendance{StaffID: "staff-2", Date: date(2024, 6, 3), Status: attendance.StatusAbsent},
	)

	f := &fixture{
		attendance: &fakeAttendanceRepo{records: records},
		advances: &fakeAdvanceRepo{advances: []advance.Advance{
			{ID: "adv-1", StaffID: "staff-1", AdvanceDate: date(2024, 6, 15), Amount: decimal.NewFromInt(500)},
			{ID: "adv-2", StaffID: "staff-1", AdvanceDate: date(2024, 5, 31), Amount: decimal.NewFromInt(9999)},
		}},
		staff: &fakeStaffRepo{staff: map[string]staff.Staff{
			"staff-1": {ID: "staff-1", UserID: "user-1", MonthlySalary: decimal.NewFromInt(30000)},
		}},
	}
	f.svc = &SalaryServiceImpl{
		staffRepo:      f.staff,
		attendanceRepo: f.attendance,
		advanceRepo:    f.advances,
		metrics:        metrics.New(),
		location:       time.UTC,
		now:            func() time.Time { return time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC) },
	}
	return f
}

func TestGetBreakdown_ReferenceMonth(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetBreakdown(context.Background(), "staff-1", salary.BreakdownRequest{Year: 2024, Month: 6})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.TotalDaysInMonth)
	assert.Equal(t, 28, resp.PresentDays)
	assert.Equal(t, 1, resp.HalfDays)
	assert.Equal(t, 1, resp.AbsentDays)
	assert.Equal(t, "30000.00", resp.BaseSalary)
	assert.Equal(t, "1000.00", resp.PerDaySalary)
	assert.Equal(t, "500.00", resp.HalfDayDeduction)
	assert.Equal(t, "1000.00", resp.AbsentDeduction)
	assert.Equal(t, "500.00", resp.TotalAdvances)
	assert.Equal(t, "28000.00", resp.NetSalary)
	require.Len(t, resp.Advances, 1)
	assert.Equal(t, "adv-1", resp.Advances[0].ID)

	assert.Equal(t, date(2024, 6, 1), f.attendance.from)
	assert.Equal(t, date(2024, 6, 30), f.attendance.to)
}

func TestGetBreakdown_DefaultsToCurrentMonth(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetBreakdown(context.Background(), "staff-1", salary.BreakdownRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, 6, resp.Month)
}

func TestGetBreakdown_EmptyMonth(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetBreakdown(context.Background(), "staff-1", salary.BreakdownRequest{Year: 2024, Month: 2})
	require.NoError(t, err)
	assert.Equal(t, 29, resp.TotalDaysInMonth)
	assert.Equal(t, 0, resp.PresentDays)
	assert.Equal(t, "30000.00", resp.NetSalary)
	assert.Empty(t, resp.Advances)
}

func TestGetBreakdown_RecomputesEveryCall(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := salary.BreakdownRequest{Year: 2024, Month: 6}

	first, err := f.svc.GetBreakdown(ctx, "staff-1", req)
	require.NoError(t, err)
	assert.Equal(t, "28000.00", first.NetSalary)
	assert.Equal(t, "500.00", first.TotalAdvances)
	assert.Equal(t, "30000.00", first.BaseSalary)

	f.advances.advances = append(f.advances.advances, advance.Advance{
		ID: "adv-3", StaffID: "staff-1", AdvanceDate: date(2024, 6, 18), Amount: decimal.NewFromInt(2000),
	})
	profile := f.staff.staff["staff-1"]
	profile.MonthlySalary = decimal.NewFromInt(60000)
	f.staff.staff["staff-1"] = profile

	second, err := f.svc.GetBreakdown(ctx, "staff-1", req)
	require.NoError(t, err)
	assert.Equal(t, "60000.00", second.BaseSalary)
	assert.Equal(t, "2000.00", second.PerDaySalary)
	assert.Equal(t, "2500.00", second.TotalAdvances)
	// 60000 - 1000 (half day) - 2000 (absent) - 2500 (advances)
	assert.Equal(t, "54500.00", second.NetSalary)
	assert.Len(t, second.Advances, 2)
	assert.Equal(t, 2, f.attendance.calls)
}

func TestGetBreakdown_ReflectsNewAttendance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := salary.BreakdownRequest{Year: 2024, Month: 6}

	_, err := f.svc.GetBreakdown(ctx, "staff-1", req)
	require.NoError(t, err)

	for i := range f.attendance.records {
		if f.attendance.records[i].StaffID == "staff-1" && f.attendance.records[i].Date.Equal(date(2024, 6, 30)) {
			f.attendance.records[i].Status = attendance.StatusPresent
		}
	}

	resp, err := f.svc.GetBreakdown(ctx, "staff-1", req)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AbsentDays)
	assert.Equal(t, "29000.00", resp.NetSalary)
}

func TestGetBreakdown_Failures(t *testing.T) {
	t.Run("unknown staff", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.GetBreakdown(context.Background(), "staff-9", salary.BreakdownRequest{Year: 2024, Month: 6})
		assert.ErrorIs(t, err, staff.ErrStaffNotFound)
	})

	t.Run("attendance query failure is not an empty month", func(t *testing.T) {
		f := newFixture()
		f.attendance.err = errors.New("timeout")
		_, err := f.svc.GetBreakdown(context.Background(), "staff-1", salary.BreakdownRequest{Year: 2024, Month: 6})
		assert.Error(t, err)
	})

	t.Run("advance query failure", func(t *testing.T) {
		f := newFixture()
		f.advances.err = errors.New("timeout")
		_, err := f.svc.GetBreakdown(context.Background(), "staff-1", salary.BreakdownRequest{Year: 2024, Month: 6})
		assert.Error(t, err)
	})

	t.Run("negative advance", func(t *testing.T) {
		f := newFixture()
		f.advances.advances = append(f.advances.advances, advance.Advance{ID: "bad", StaffID: "staff-1", AdvanceDate: date(2024, 6, 2), Amount: decimal.NewFromInt(-1)})
		_, err := f.svc.GetBreakdown(context.Background(), "staff-1", salary.BreakdownRequest{Year: 2024, Month: 6})
		assert.ErrorIs(t, err, salary.ErrNegativeAdvance)
	})

	t.Run("invalid month", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.GetBreakdown(context.Background(), "staff-1", salary.BreakdownRequest{Year: 2024, Month: 0})
		assert.Error(t, err)
	})
}
