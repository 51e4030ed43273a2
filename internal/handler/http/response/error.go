package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/salary"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound):
		Unauthorized(w, "Refresh token cookie not found")
	case errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, "Refresh token cookie is empty")
	case errors.Is(err, auth.ErrTooManyLoginAttempts):
		TooManyRequests(w, "Too many failed login attempts, try again later")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff profile not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrTodayOnly):
		BadRequest(w, "You can only mark attendance for today!", nil)
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, attendance.ErrInvalidStatus.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceFailed):
		slog.Error("attendance write failed", "error", err)
		InternalServerError(w, "Failed to mark attendance")

	// Salary domain errors come from inconsistent stored data
	case errors.Is(err, salary.ErrInvalidDaysInMonth),
		errors.Is(err, salary.ErrNegativeBaseSalary),
		errors.Is(err, salary.ErrNegativeAdvance):
		slog.Error("salary computation rejected stored data", "error", err)
		InternalServerError(w, "Salary data is inconsistent")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
