package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

const failedMessage = "validation failed"

type (
	FieldError struct {
		Field   string `json:"field"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}

	// Error aggregates every violation of one input. Details joins the
	// "field: message" pairs sorted by field.
	Error struct {
		Message string       `json:"message"`
		Details string       `json:"details"`
		Fields  []FieldError `json:"fields"`
	}
)

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

// Has reports whether the field failed validation.
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}

	return false
}

// IsValidationError reports whether err carries a *Error.
func IsValidationError(err error) bool {
	var target *Error

	return errors.As(err, &target)
}

func newError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}

	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Field < fields[j].Field
	})

	parts := make([]string, len(fields))
	for index, field := range fields {
		parts[index] = field.Field + ": " + field.Message
	}

	return &Error{
		Message: failedMessage,
		Details: strings.Join(parts, ", "),
		Fields:  fields,
	}
}

func fromOzzo(errs ozzo.Errors) error {
	fields := make([]FieldError, 0, len(errs))

	for field, err := range errs {
		if err == nil {
			continue
		}

		code := "validation_invalid"

		var ozzoErr ozzo.Error
		if errors.As(err, &ozzoErr) {
			code = ozzoErr.Code()
		}

		fields = append(fields, FieldError{Field: field, Code: code, Message: err.Error()})
	}

	return newError(fields)
}

// NewFieldError reports a single violation found outside a schema, for example
// a rule spanning two fields.
func NewFieldError(field, message string) error {
	return newError([]FieldError{{Field: field, Code: "validation_invalid", Message: message}})
}
