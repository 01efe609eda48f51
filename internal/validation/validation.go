// Package validation contains the logic for validating request data.
//
// Payload shapes are declared once as a Schema over a struct type whose
// `validate` tags are enforced by go-playground/validator. Schemas are
// immutable and safe to share between concurrent requests.
package validation
