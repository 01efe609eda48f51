package service

import (
	"github.com/deppfellow/go-service-template/internal/server"
)

// Services groups every service so handlers receive a single dependency.
type Services struct {
	Greeting *GreetingService
}

// NewServices constructs the service container.
func NewServices(s *server.Server) (*Services, error) {
	return &Services{
		Greeting: NewGreetingService(s),
	}, nil
}
