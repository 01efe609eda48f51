package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/go-service-template/internal/errs"
	"github.com/labstack/echo/v4"
)

// Schema describes the expected shape of a payload of type T.
//
// T must be a struct type. A Schema has no mutable state.
type Schema[T any] struct {
	name string
}

// NewSchema declares a schema for T. It panics if T is not a struct, since
// schemas are declared at package initialisation.
func NewSchema[T any](name string) *Schema[T] {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("validation: schema %q needs a struct type, got %s", name, typ))
	}
	return &Schema[T]{name: name}
}

// Name returns the schema name used in error messages.
func (s *Schema[T]) Name() string {
	return s.name
}

// Validate checks payload against the schema.
//
// It returns the payload unchanged when valid, and a *ValidationError
// listing every offending field otherwise. Types that implement
// Validatable get their own Validate called after the tag rules pass.
func (s *Schema[T]) Validate(payload T) (T, error) {
	var zero T

	if err := validate.Struct(&payload); err != nil {
		return zero, s.fail(err)
	}

	if v, ok := any(&payload).(Validatable); ok {
		if err := v.Validate(); err != nil {
			return zero, s.fail(err)
		}
	}

	return payload, nil
}

// Decode parses data as JSON into T and validates the result.
//
// Unknown fields are ignored. Malformed JSON and type mismatches are
// reported as a *ValidationError like any other schema violation.
func (s *Schema[T]) Decode(data []byte) (T, error) {
	var zero T
	var payload T

	if err := json.Unmarshal(data, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return zero, &ValidationError{
				Schema: s.name,
				Fields: []errs.FieldError{{
					Field: typeErr.Field,
					Error: "must be a " + typeErr.Type.Kind().String(),
				}},
			}
		}

		return zero, &ValidationError{
			Schema: s.name,
			Fields: []errs.FieldError{{Field: "", Error: "malformed JSON"}},
		}
	}

	return s.Validate(payload)
}

// Bind populates a fresh T from the request and validates it.
//
// Failures are returned as *errs.HTTPError (400) so the global error
// handler can render them directly.
func (s *Schema[T]) Bind(c echo.Context) (T, error) {
	var zero T
	var payload T

	if err := c.Bind(&payload); err != nil {
		return zero, errs.NewBadRequestError("Invalid request payload", nil, nil)
	}

	validated, err := s.Validate(payload)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return zero, errs.ValidationError(validationErr.Fields)
		}
		return zero, err
	}

	return validated, nil
}

func (s *Schema[T]) fail(err error) error {
	return &ValidationError{
		Schema: s.name,
		Fields: extractValidationError(err),
	}
}

// ValidationError reports that a payload does not match its schema.
type ValidationError struct {
	Schema string
	Fields []errs.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Error)
			continue
		}
		parts = append(parts, f.Field+" "+f.Error)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Schema, strings.Join(parts, "; "))
}
