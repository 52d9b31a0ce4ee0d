// Package validation wraps go-playground/validator and turns its errors into
// per-field messages suitable for forms and JSON responses.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

type (
	// ErrorResponse represents a single failed field.
	ErrorResponse struct {
		Error       bool
		FailedField string
		Tag         string
		Param       string
		Value       interface{}
	}

	// XValidator validates structs using their `validate` tags.
	XValidator struct{}

	// Errors maps a field name to its messages.
	Errors map[string][]string
)

// Validator is the shared validator instance.
var Validator = XValidator{}

var validate = newValidate()

// newValidate reports fields by their form (or json) name instead of the Go field name.
func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}

			if name != "" {
				return name
			}
		}

		return fld.Name
	})

	return v
}

// Validate performs validation on the provided data and returns a slice of ErrorResponse.
func (v XValidator) Validate(data interface{}) []ErrorResponse {
	var (
		validationErrors []ErrorResponse
		verrs            validator.ValidationErrors
	)

	if !errors.As(validate.Struct(data), &verrs) {
		return nil
	}

	for _, err := range verrs {
		validationErrors = append(validationErrors, ErrorResponse{
			Error:       true,
			FailedField: err.Field(),
			Tag:         err.Tag(),
			Param:       err.Param(),
			Value:       err.Value(),
		})
	}

	return validationErrors
}

// Check validates data and returns nil or the per-field messages.
func (v XValidator) Check(data interface{}) Errors {
	resp := v.Validate(data)
	if len(resp) == 0 {
		return nil
	}

	out := make(Errors, len(resp))
	for _, r := range resp {
		out.Add(r.FailedField, Message(r.Tag, r.Param))
	}

	return out
}

// Message returns the human readable message for a failed validation tag.
func Message(tag, param string) string {
	switch tag {
	case "required", "required_if":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", param)
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", param)
	case "oneof":
		return "Select a valid choice."
	case "numeric", "number":
		return "Enter a number."
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", tag)
	}
}

// Add appends a message for field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Error implements error.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}

	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e[f], " "))
	}

	return strings.Join(parts, "; ")
}

// First returns the first message of field or an empty string.
func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}

	return ""
}
