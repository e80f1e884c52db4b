package handlers

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-identity-service/pkg/response"
)

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type HealthHandler struct {
	Checks map[string]Check
}

func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{Checks: checks}
}

// Healthz answers 200 when every check passes and 503 otherwise, with the
// per-dependency status as data.
func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{}
	var down []string
	for name, check := range h.Checks {
		if err := check(ctx); err != nil {
			status[name] = "down"
			down = append(down, name)
			continue
		}
		status[name] = "up"
	}
	if len(down) > 0 {
		slices.Sort(down)
		response.Degraded(c, http.StatusServiceUnavailable, status, "degraded", down...)
		return
	}
	response.OK(c, http.StatusOK, status, "ok", nil)
}
