package errs

import (
	"net/http"
	"strings"
)

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "name", "error": "is required" }
type FieldError struct {
	// Field is the JSON name of the offending field (e.g. "name").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// ErrorResponse is the wire shape of every failed request.
//
// Only Error is always present. Errors is filled for validation failures.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Errors []FieldError `json:"errors,omitempty"`
}

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), logged only.
//   - Message: client-safe message.
//   - Status: HTTP status code.
//   - Errors: per-field errors (validation).
type HTTPError struct {
	Code    string
	Message string
	Status  int
	Errors  []FieldError
}

// Error makes *HTTPError satisfy the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It does not compare Code or Status, only the type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Errors:  e.Errors,
	}
}

// Response converts the error into its wire form.
//
// Server-side failures (5xx) never expose their message or field errors:
// the body is always the generic status text.
func (e *HTTPError) Response() ErrorResponse {
	if e.Status >= http.StatusInternalServerError {
		return InternalServerErrorResponse()
	}

	return ErrorResponse{
		Error:  e.Message,
		Errors: e.Errors,
	}
}

// InternalServerErrorResponse is the only body a client ever sees for a 5xx.
func InternalServerErrorResponse() ErrorResponse {
	return ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
