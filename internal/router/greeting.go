package router

import (
	"github.com/deppfellow/go-service-template/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerGreetingRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Greeting.Hello)
}
