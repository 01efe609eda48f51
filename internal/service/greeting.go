package service

import (
	"strings"

	"github.com/deppfellow/go-service-template/internal/server"
)

// DefaultGreeting is returned by the root route.
const DefaultGreeting = "Hello, world!"

// GreetingService builds greeting messages.
type GreetingService struct {
	server *server.Server
}

func NewGreetingService(s *server.Server) *GreetingService {
	return &GreetingService{
		server: s,
	}
}

// Greet returns the default greeting.
func (g *GreetingService) Greet() string {
	return DefaultGreeting
}

// GreetName greets name, or falls back to the default greeting.
func (g *GreetingService) GreetName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultGreeting
	}
	return "Hello, " + name + "!"
}
