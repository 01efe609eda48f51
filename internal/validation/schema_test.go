package validation_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/go-service-template/internal/errs"
	"github.com/deppfellow/go-service-template/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namePayload struct {
	Name string `json:"name" validate:"required,min=1"`
}

type rangePayload struct {
	Start int `json:"start" validate:"min=0"`
	End   int `json:"end" validate:"max=100"`
}

func (p *rangePayload) Validate() error {
	if p.End < p.Start {
		return validation.CustomValidationErrors{{Field: "end", Message: "must not be before start"}}
	}
	return nil
}

var nameSchema = validation.NewSchema[namePayload]("name")

func TestValidateReturnsTypedPayload(t *testing.T) {
	got, err := nameSchema.Validate(namePayload{Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, namePayload{Name: "Ada"}, got)
}

func TestValidateRejectsEmptyName(t *testing.T) {
	_, err := nameSchema.Validate(namePayload{})

	var validationErr *validation.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "name", validationErr.Schema)
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is required"}}, validationErr.Fields)
	assert.Equal(t, "validation failed for name: name is required", err.Error())
}

func TestValidateRunsCustomRules(t *testing.T) {
	schema := validation.NewSchema[rangePayload]("range")

	_, err := schema.Validate(rangePayload{Start: 10, End: 5})
	var validationErr *validation.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []errs.FieldError{{Field: "end", Error: "must not be before start"}}, validationErr.Fields)

	_, err = schema.Validate(rangePayload{Start: 1, End: 500})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []errs.FieldError{{Field: "end", Error: "must not exceed 100"}}, validationErr.Fields)

	_, err = schema.Validate(rangePayload{Start: 1, End: 5})
	assert.NoError(t, err)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    namePayload
		wantErr []errs.FieldError
	}{
		{name: "valid", body: `{"name":"Ada"}`, want: namePayload{Name: "Ada"}},
		{name: "unknown fields ignored", body: `{"name":"Ada","extra":true}`, want: namePayload{Name: "Ada"}},
		{name: "missing field", body: `{}`, wantErr: []errs.FieldError{{Field: "name", Error: "is required"}}},
		{name: "wrong type", body: `{"name":5}`, wantErr: []errs.FieldError{{Field: "name", Error: "must be a string"}}},
		{name: "malformed", body: `{"name":`, wantErr: []errs.FieldError{{Field: "", Error: "malformed JSON"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nameSchema.Decode([]byte(tt.body))
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			var validationErr *validation.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantErr, validationErr.Fields)
			assert.Zero(t, got)
		})
	}
}

func TestBindMapsFailuresToBadRequest(t *testing.T) {
	e := echo.New()

	newContext := func(body string) echo.Context {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		return e.NewContext(req, httptest.NewRecorder())
	}

	got, err := nameSchema.Bind(newContext(`{"name":"Ada"}`))
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)

	_, err = nameSchema.Bind(newContext(`{"name":""}`))
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is required"}}, httpErr.Errors)

	_, err = nameSchema.Bind(newContext(`{"name":`))
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Invalid request payload", httpErr.Message)
}

func TestNewSchemaRejectsNonStruct(t *testing.T) {
	assert.Panics(t, func() { validation.NewSchema[string]("bad") })
}

func TestSchemaIsReusable(t *testing.T) {
	for i := 0; i < 3; i++ {
		_, err := nameSchema.Validate(namePayload{})
		assert.Error(t, err)
		_, err = nameSchema.Validate(namePayload{Name: "x"})
		assert.NoError(t, err)
	}
	assert.Equal(t, "name", nameSchema.Name())
}
