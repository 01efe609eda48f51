// Package router builds application instances: an echo instance with the
// request pipeline installed, the routes registered and the global error
// handler set.
package router

import (
	"github.com/deppfellow/go-service-template/internal/handler"
	"github.com/deppfellow/go-service-template/internal/middleware"
	"github.com/deppfellow/go-service-template/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter returns a new application instance. It performs no I/O and
// shares no state with other instances, so it can be called any number of
// times.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	for _, step := range mw.Pipeline() {
		router.Use(step.Handler)
	}

	registerGreetingRoutes(router, h)
	registerSystemRoutes(router, s, h, mw)

	return router
}
