package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-portal-go/internal/handler/http/response"
)

type staffIDKey struct{}

// StaffMiddleware gates routes that act on the caller's own staff record.
type StaffMiddleware struct {
	staffService staff.StaffService
}

func NewStaffMiddleware(staffService staff.StaffService) *StaffMiddleware {
	return &StaffMiddleware{
		staffService: staffService,
	}
}

// RequireStaff looks up the session user's staff profile on every request,
// so a profile created, removed or relinked after sign-in takes effect
// without a new token. Must run after AuthRequired.
func (m *StaffMiddleware) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := CurrentSession(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		profile, err := m.staffService.GetMyProfile(r.Context(), session.UserID)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if session.HasStaff() && *session.StaffID != profile.ID {
			slog.Debug("token staff_id is stale", "user_id", session.UserID, "token_staff_id", *session.StaffID, "staff_id", profile.ID)
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), staffIDKey{}, profile.ID)))
	})
}

// StaffID returns the staff id resolved by RequireStaff, or "" outside it.
func StaffID(ctx context.Context) string {
	staffID, _ := ctx.Value(staffIDKey{}).(string)
	return staffID
}
