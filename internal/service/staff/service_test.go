package staff

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/staff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStaffRepo struct {
	profiles []staff.Staff
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	for _, s := range f.profiles {
		if s.ID == id {
			return s, nil
		}
	}
	return staff.Staff{}, staff.ErrStaffNotFound
}

func (f *fakeStaffRepo) GetByUserID(ctx context.Context, userID string) (staff.Staff, error) {
	for _, s := range f.profiles {
		if s.UserID == userID {
			return s, nil
		}
	}
	return staff.Staff{}, staff.ErrStaffNotFound
}

func TestGetMyProfile(t *testing.T) {
	svc := NewStaffService(&fakeStaffRepo{profiles: []staff.Staff{
		{ID: "staff-1", UserID: "user-1", FullName: "Asha Rao", Designation: "Accountant", MonthlySalary: decimal.RequireFromString("30000")},
	}})

	resp, err := svc.GetMyProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "staff-1", resp.ID)
	assert.Equal(t, "Asha Rao", resp.FullName)
	assert.Equal(t, "Accountant", resp.Designation)
	assert.Equal(t, "30000.00", resp.MonthlySalary)

	_, err = svc.GetMyProfile(context.Background(), "user-2")
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}
