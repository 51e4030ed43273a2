package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/database"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type staffRepositoryImpl struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepositoryImpl{db: db}
}

const staffColumns = `id, user_id, full_name, designation, monthly_salary, created_at, updated_at`

func scanStaff(row pgx.Row) (staff.Staff, error) {
	var s staff.Staff
	err := row.Scan(&s.ID, &s.UserID, &s.FullName, &s.Designation, &s.MonthlySalary, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// GetByID implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	if !validator.IsValidUUID(id) {
		return staff.Staff{}, staff.ErrStaffNotFound
	}

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`

	s, err := scanStaff(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff by id: %w", err)
	}
	return s, nil
}

// GetByUserID implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByUserID(ctx context.Context, userID string) (staff.Staff, error) {
	if !validator.IsValidUUID(userID) {
		return staff.Staff{}, staff.ErrStaffNotFound
	}

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE user_id = $1`

	s, err := scanStaff(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff by user id: %w", err)
	}
	return s, nil
}
