package middleware

import (
	"net/http"

	"github.com/deppfellow/go-service-template/internal/errs"
	"github.com/deppfellow/go-service-template/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the application-wide middleware and the global
// error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger writes one "API" log line per request, at error level for
// 5xx, warn for 4xx and info otherwise.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// The error handler has not written the response yet.
			// Reference: https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = statusFromError(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= http.StatusInternalServerError:
				e = logger.Error().Err(v.Error)
			case statusCode >= http.StatusBadRequest:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns a panic into an error. The panic is logged with its stack
// and the error is returned up the chain, so the global error handler
// sees it exactly once.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableErrorHandler: true,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			global.loggerFor(c).Error().
				Err(err).
				Str("stack", string(stack)).
				Msg("recovered from panic")

			return errors.Wrap(err, "panic recovered")
		},
	})
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the single terminal error path of the application.
//
// Client errors keep their status and message. Every 5xx is rendered as
// {"error":"Internal Server Error"} whatever the cause. The original error is
// always logged. The handler writes at most once and never panics.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	defer func() {
		if r := recover(); r != nil {
			global.server.Logger.Error().
				Interface("panic", r).
				Msg("error handler failed, writing fallback response")
			writeFallback(c)
		}
	}()

	httpErr := toHTTPError(err)

	logged := err
	if httpErr.Status >= http.StatusInternalServerError {
		logged = errors.WithStack(err)
	}

	global.loggerFor(c).Error().Stack().
		Err(logged).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(httpErr.Status)
	} else {
		writeErr = c.JSON(httpErr.Status, httpErr.Response())
	}

	if writeErr != nil {
		global.server.Logger.Error().Err(writeErr).Msg("failed to write error response")
		writeFallback(c)
	}
}

// loggerFor returns the request logger. Requests rejected before
// ContextEnhancer ran (body parser failures) get the server logger with
// the request line and any client-supplied request id attached.
func (global *GlobalMiddlewares) loggerFor(c echo.Context) *zerolog.Logger {
	if l, ok := requestLogger(c); ok {
		return l
	}

	req := c.Request()
	fallback := global.server.Logger.With().
		Str("method", req.Method).
		Str("uri", req.RequestURI).
		Str("ip", c.RealIP()).
		Str("request_id", req.Header.Get(RequestIDHeader)).
		Logger()

	return &fallback
}

// toHTTPError classifies err. Unknown errors become a 500.
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return errs.NewNotFoundError("Route not found", nil)
		}
		return errs.FromStatus(echoErr.Code)
	}

	return errs.NewInternalServerError()
}

// statusFromError is the status GlobalErrorHandler will write for err.
func statusFromError(err error) int {
	return toHTTPError(err).Status
}

func writeFallback(c echo.Context) {
	defer func() { _ = recover() }()

	res := c.Response()
	if res.Committed {
		return
	}

	res.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res.WriteHeader(http.StatusInternalServerError)
	_, _ = res.Write([]byte(`{"error":"Internal Server Error"}` + "\n"))
}
