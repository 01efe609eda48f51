package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/go-service-template/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", errs.MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", errs.MakeUpperCaseWithUnderscores("Internal Server Error"))
}

func TestHTTPErrorMatchesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading thing: %w", errs.NewNotFoundError("Thing not found", nil))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "NOT_FOUND", httpErr.Code)
	assert.True(t, errors.Is(wrapped, &errs.HTTPError{}))
}

func TestResponseHidesServerErrorDetails(t *testing.T) {
	leaky := &errs.HTTPError{
		Code:    "DB_DOWN",
		Message: "dial tcp 10.0.0.5:5432: connection refused",
		Status:  http.StatusServiceUnavailable,
		Errors:  []errs.FieldError{{Field: "x", Error: "y"}},
	}

	assert.Equal(t, errs.ErrorResponse{Error: "Internal Server Error"}, leaky.Response())
	assert.Equal(t, errs.ErrorResponse{Error: "Internal Server Error"}, errs.NewInternalServerError().Response())
}

func TestValidationErrorCarriesFields(t *testing.T) {
	fields := []errs.FieldError{{Field: "name", Error: "is required"}}
	err := errs.ValidationError(fields)

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "VALIDATION_FAILED", err.Code)
	assert.Equal(t, errs.ErrorResponse{Error: "Validation failed", Errors: fields}, err.Response())
}

func TestFromStatus(t *testing.T) {
	assert.Equal(t, "Method Not Allowed", errs.FromStatus(http.StatusMethodNotAllowed).Message)
	assert.Equal(t, http.StatusInternalServerError, errs.FromStatus(999).Status)
}

func TestWithMessageDoesNotMutate(t *testing.T) {
	base := errs.NewNotFoundError("Route not found", nil)
	custom := base.WithMessage("User not found")

	assert.Equal(t, "Route not found", base.Message)
	assert.Equal(t, "User not found", custom.Message)
	assert.Equal(t, base.Status, custom.Status)
}
