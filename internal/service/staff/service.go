package staff

import (
	"context"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/staff"
)

type StaffServiceImpl struct {
	staff.StaffRepository
}

func NewStaffService(staffRepository staff.StaffRepository) staff.StaffService {
	return &StaffServiceImpl{StaffRepository: staffRepository}
}

// GetMyProfile implements staff.StaffService.
func (s *StaffServiceImpl) GetMyProfile(ctx context.Context, userID string) (staff.StaffResponse, error) {
	profile, err := s.StaffRepository.GetByUserID(ctx, userID)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	return staff.NewStaffResponse(profile), nil
}
