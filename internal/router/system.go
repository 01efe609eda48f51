package router

import (
	"github.com/deppfellow/go-service-template/internal/handler"
	"github.com/deppfellow/go-service-template/internal/middleware"
	"github.com/deppfellow/go-service-template/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not business logic:
// liveness, API docs and, when enabled, Prometheus metrics.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) {
	r.GET("/health", h.Health.CheckHealth)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/docs/openapi.json", h.OpenAPI.ServeOpenAPISpec)

	if obs := s.Config.Observability; obs != nil && obs.Metrics.Enabled {
		r.GET(obs.Metrics.Path, mw.Metrics.Handler())
	}
}
