package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/deppfellow/go-service-template/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	// JSONBodyKey is the echo context key of the parsed JSON body.
	JSONBodyKey = "json_body"

	// jsonBodyParsedKey marks that JSONBodyKey holds a parsed body, which
	// may itself be nil for a JSON null.
	jsonBodyParsedKey = "json_body_parsed"

	defaultBodyLimit int64 = 1 << 20
)

var malformedBodyCode = "MALFORMED_JSON"

// BodyParser parses JSON request bodies up to the configured limit.
//
// Requests without a JSON content type or without a body pass through
// untouched. A body over the limit fails with 413 and malformed JSON with
// 400; in both cases nothing after this step runs. The parsed value is
// stored under JSONBodyKey and the raw body is rewound for c.Bind.
func (global *GlobalMiddlewares) BodyParser() echo.MiddlewareFunc {
	limit, err := global.server.Config.Server.BodyLimitBytes()
	if err != nil {
		global.server.Logger.Warn().Err(err).Int64("limit", defaultBodyLimit).Msg("using default body limit")
		limit = defaultBodyLimit
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.Body == http.NoBody || !isJSONContentType(req.Header.Get(echo.HeaderContentType)) {
				return next(c)
			}

			if req.ContentLength > limit {
				return errs.NewRequestEntityTooLargeError()
			}

			body, err := io.ReadAll(http.MaxBytesReader(c.Response(), req.Body, limit))
			if err != nil {
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					return errs.NewRequestEntityTooLargeError()
				}
				return errs.NewBadRequestError("Unable to read request body", nil, nil)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			if len(bytes.TrimSpace(body)) == 0 {
				return next(c)
			}

			var parsed any
			if err := json.Unmarshal(body, &parsed); err != nil {
				return errs.NewBadRequestError("Malformed JSON body", &malformedBodyCode, nil)
			}
			c.Set(JSONBodyKey, parsed)
			c.Set(jsonBodyParsedKey, true)

			return next(c)
		}
	}
}

// GetJSONBody returns the body parsed by BodyParser. The boolean is false
// when no JSON body was parsed; a JSON null body yields (nil, true).
func GetJSONBody(c echo.Context) (any, bool) {
	if parsed, _ := c.Get(jsonBodyParsedKey).(bool); !parsed {
		return nil, false
	}
	return c.Get(JSONBodyKey), true
}

func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == echo.MIMEApplicationJSON || strings.HasSuffix(mediaType, "+json")
}
