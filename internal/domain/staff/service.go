package staff

import "context"

type StaffService interface {
	GetMyProfile(ctx context.Context, userID string) (StaffResponse, error)
}
