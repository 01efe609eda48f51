package middleware

import (
	"github.com/deppfellow/go-service-template/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Step names, in pipeline order.
const (
	StepBodyParser      = "body_parser"
	StepRecover         = "recover"
	StepRequestID       = "request_id"
	StepNewRelic        = "new_relic"
	StepContextEnhancer = "context_enhancer"
	StepTracing         = "tracing"
	StepMetrics         = "metrics"
	StepRequestLogger   = "request_logger"
	StepSecure          = "secure"
	StepCORS            = "cors"
	StepHandlerRecover  = "handler_recover"
)

// Step is one named stage of the request pipeline.
type Step struct {
	Name    string
	Handler echo.MiddlewareFunc
}

// Middlewares groups all middleware components of one application instance.
type Middlewares struct {
	// Global holds body parsing, recovery, request logging, secure headers,
	// CORS and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches a request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware. Both of its steps are no-ops
	// when New Relic is not configured.
	Tracing *TracingMiddleware

	// Metrics owns this instance's Prometheus registry.
	Metrics *MetricsMiddleware
}

// NewMiddlewares constructs all middleware components for one application
// instance. Nothing here is shared with other instances.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		Metrics:         NewMetricsMiddleware(s),
	}
}

// Pipeline returns the request pipeline in the order it must be installed.
//
// The body parser comes first so a malformed body is rejected before any
// other step or route handler runs. Recover appears twice: the outer step
// catches panics raised by the pipeline itself, the inner one sits next to
// the route handler so metrics and the request logger see a handler panic
// as a returned error.
func (m *Middlewares) Pipeline() []Step {
	return []Step{
		{Name: StepBodyParser, Handler: m.Global.BodyParser()},
		{Name: StepRecover, Handler: m.Global.Recover()},
		{Name: StepRequestID, Handler: RequestID()},
		{Name: StepNewRelic, Handler: m.Tracing.NewRelicMiddleware()},
		{Name: StepContextEnhancer, Handler: m.ContextEnhancer.EnhanceContext()},
		{Name: StepTracing, Handler: m.Tracing.EnhanceTracing()},
		{Name: StepMetrics, Handler: m.Metrics.Instrument()},
		{Name: StepRequestLogger, Handler: m.Global.RequestLogger()},
		{Name: StepSecure, Handler: m.Global.Secure()},
		{Name: StepCORS, Handler: m.Global.CORS()},
		{Name: StepHandlerRecover, Handler: m.Global.Recover()},
	}
}
