package handler

import (
	"net/http"

	"github.com/deppfellow/go-service-template/internal/server"
	"github.com/deppfellow/go-service-template/internal/service"
	"github.com/deppfellow/go-service-template/internal/validation"
	"github.com/labstack/echo/v4"
)

// HelloRequest is the payload accepted by greeting routes that take a name.
type HelloRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// HelloSchema requires a non-empty "name". The default routes do not
// enforce it; typed routes consume it through Handle.
var HelloSchema = validation.NewSchema[HelloRequest]("hello")

// MessageResponse is the body of the root route.
type MessageResponse struct {
	Message string `json:"message"`
}

type GreetingHandler struct {
	Handler
	greeting *service.GreetingService
}

func NewGreetingHandler(s *server.Server, greeting *service.GreetingService) *GreetingHandler {
	return &GreetingHandler{
		Handler:  NewHandler(s),
		greeting: greeting,
	}
}

// Hello answers GET / with {"message":"Hello, world!"}.
func (h *GreetingHandler) Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: h.greeting.Greet()})
}

// Greet greets the validated name.
func (h *GreetingHandler) Greet(c echo.Context, req HelloRequest) (MessageResponse, error) {
	return MessageResponse{Message: h.greeting.GreetName(req.Name)}, nil
}
