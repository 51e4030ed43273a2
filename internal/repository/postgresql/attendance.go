package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, staff_id, date, status, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var status string
	err := row.Scan(&att.ID, &att.StaffID, &att.Date, &status, &att.CreatedAt, &att.UpdatedAt)
	att.Status = attendance.Status(status)
	return att, err
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (staff_id, date, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (staff_id, date)
		DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query, att.StaffID, att.Date, string(att.Status)))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return saved, nil
}

// GetByStaffAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE staff_id = $1 AND date = $2`

	att, err := scanAttendance(q.QueryRow(ctx, query, staffID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return &att, nil
}

// ListByStaffAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByStaffAndRange(ctx context.Context, staffID string, from, to time.Time) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE staff_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date ASC
	`
	return a.list(ctx, query, staffID, from, to)
}

// ListRecentByStaff implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListRecentByStaff(ctx context.Context, staffID string, limit int) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE staff_id = $1
		ORDER BY date DESC
		LIMIT $2
	`
	return a.list(ctx, query, staffID, limit)
}

func (a *attendanceRepository) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return records, nil
}
