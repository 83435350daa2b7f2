// Package inputval validates form input structs using struct tags and
// produces user-facing field messages.
//
// Validation rules come from go-playground/validator `validate` tags; the
// `label` tag supplies the human name used in messages:
//
//	type createEventInput struct {
//	    Title string `validate:"required,max=200" label:"Title"`
//	}
//
//	if result := inputval.Validate(input); result.HasErrors() {
//	    // re-render the form with result.First()
//	}
package inputval

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field names from the `label` tag so messages read naturally.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})

	return v
}

// FieldError is a single validation failure with a user-facing message.
type FieldError struct {
	Field   string
	Message string
}

// Result collects validation failures for one input struct.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any field failed validation.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first error message, or "" if validation passed.
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All returns every error message joined with "; ".
func (r *Result) All() string {
	if len(r.Errors) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the struct against its `validate` tags.
func Validate(input any) *Result {
	result := &Result{}

	err := validate.Struct(input)
	if err == nil {
		return result
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		result.Errors = append(result.Errors, FieldError{Message: "Invalid input."})
		return result
	}

	for _, fe := range verrs {
		result.Errors = append(result.Errors, FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return result
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}
