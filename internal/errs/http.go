package errs

import (
	"net/http"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewRequestEntityTooLargeError creates a 413 HTTPError for bodies over the limit.
func NewRequestEntityTooLargeError() *HTTPError {
	return newStatusError(http.StatusRequestEntityTooLarge)
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the real internal error.
func NewInternalServerError() *HTTPError {
	return newStatusError(http.StatusInternalServerError)
}

// FromStatus builds an HTTPError whose message is the status text of code.
// Used to translate framework errors without echoing their messages.
func FromStatus(code int) *HTTPError {
	if http.StatusText(code) == "" {
		return NewInternalServerError()
	}
	return newStatusError(code)
}

// ValidationError converts a validation failure into a 400 Bad Request HTTPError.
//
//	return errs.ValidationError(fieldErrors)
func ValidationError(fieldErrors []FieldError) *HTTPError {
	code := "VALIDATION_FAILED"
	return NewBadRequestError("Validation failed", &code, fieldErrors)
}

func newStatusError(status int) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: http.StatusText(status),
		Status:  status,
	}
}
