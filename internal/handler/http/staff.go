package http

import (
	"net/http"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-portal-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/staff-portal-go/internal/handler/http/response"
)

type StaffHandler interface {
	GetMyProfile(w http.ResponseWriter, r *http.Request)
}

type staffHandlerImpl struct {
	staffService staff.StaffService
}

func NewStaffHandler(staffService staff.StaffService) StaffHandler {
	return &staffHandlerImpl{staffService: staffService}
}

// GetMyProfile implements StaffHandler.
func (h *staffHandlerImpl) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.CurrentSession(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	profile, err := h.staffService.GetMyProfile(r.Context(), session.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}
