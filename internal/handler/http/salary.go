package http

import (
	"net/http"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/salary"
	"github.com/cmlabs-hris/staff-portal-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/staff-portal-go/internal/handler/http/response"
)

type SalaryHandler interface {
	GetBreakdown(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

// GetBreakdown implements SalaryHandler.
func (h *salaryHandlerImpl) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	year, month, err := parsePeriod(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.GetBreakdown(r.Context(), middleware.StaffID(r.Context()), salary.BreakdownRequest{Year: year, Month: month})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
