package handler

import (
	"net/http"

	"github.com/deppfellow/go-service-template/internal/middleware"
	"github.com/deppfellow/go-service-template/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthResponse is the body of the liveness route.
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthHandler reports liveness. The service has no external
// dependencies, so a running process is a healthy one.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	middleware.GetLogger(c).Debug().
		Str("operation", "health_check").
		Str("environment", h.server.Config.Primary.Env).
		Msg("health check passed")

	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
