// Package handler is the HTTP layer. It parses and validates requests,
// calls the service layer and writes responses. Failures are returned as
// errors and rendered by the global error handler.
package handler

import (
	"github.com/deppfellow/go-service-template/internal/server"
	"github.com/deppfellow/go-service-template/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one dependency.
type Handlers struct {
	Greeting *GreetingHandler
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Greeting: NewGreetingHandler(s, services.Greeting),
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
	}
}
