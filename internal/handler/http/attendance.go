package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/staff-portal-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/staff-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	GetMonth(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Mark attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Mark(r.Context(), middleware.StaffID(r.Context()), req)
	if err != nil {
		if errors.Is(err, attendance.ErrTodayOnly) {
			slog.Warn("Mark attendance rejected", "date", req.Date)
		}
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked successfully", result)
}

// GetToday implements AttendanceHandler. Data is null when nothing is marked yet.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetToday(r.Context(), middleware.StaffID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	var filter attendance.HistoryFilter
	var errs validator.ValidationErrors

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a number"})
		}
		filter.Limit = limit
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.attendanceService.GetHistory(r.Context(), middleware.StaffID(r.Context()), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetMonth implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, month, err := parsePeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetMonth(r.Context(), middleware.StaffID(r.Context()), attendance.MonthRequest{Year: year, Month: month})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// parsePeriod reads optional year and month query parameters. Absent values are zero.
func parsePeriod(r *http.Request) (year, month int, err error) {
	var errs validator.ValidationErrors
	query := r.URL.Query()

	if raw := query.Get("year"); raw != "" {
		if year, err = strconv.Atoi(raw); err != nil {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
		}
	}
	if raw := query.Get("month"); raw != "" {
		if month, err = strconv.Atoi(raw); err != nil {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
		}
	}

	if len(errs) > 0 {
		return 0, 0, errs
	}
	return year, month, nil
}
