package staff

import "context"

type StaffRepository interface {
	GetByID(ctx context.Context, id string) (Staff, error)
	// GetByUserID expects exactly one profile per user.
	GetByUserID(ctx context.Context, userID string) (Staff, error)
}
