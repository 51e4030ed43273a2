package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cmlabs-hris/staff-portal-go/internal/handler/http/response"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) bool

type HealthHandler interface {
	Ready(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	checks map[string]HealthCheck
}

func NewHealthHandler(checks map[string]HealthCheck) HealthHandler {
	return &healthHandlerImpl{checks: checks}
}

// Ready implements HealthHandler. Any failing check turns the response into a 503.
func (h *healthHandlerImpl) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]bool, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		ok := check(ctx)
		status[name] = ok
		healthy = healthy && ok
	}

	if !healthy {
		response.ServiceUnavailable(w, status)
		return
	}
	response.Success(w, status)
}
