package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/advance"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/database"
)

type advanceRepositoryImpl struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepositoryImpl{db: db}
}

// ListByStaffAndRange implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) ListByStaffAndRange(ctx context.Context, staffID string, from, to time.Time) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, staff_id, advance_date, amount, reason, created_at
		FROM salary_advances
		WHERE staff_id = $1
		  AND advance_date >= $2
		  AND advance_date <= $3
		ORDER BY advance_date ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary advances: %w", err)
	}
	defer rows.Close()

	advances := make([]advance.Advance, 0)
	for rows.Next() {
		var a advance.Advance
		if err := rows.Scan(&a.ID, &a.StaffID, &a.AdvanceDate, &a.Amount, &a.Reason, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan salary advance: %w", err)
		}
		advances = append(advances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salary advances: %w", err)
	}

	return advances, nil
}
