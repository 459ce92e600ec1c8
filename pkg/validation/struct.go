package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	return v
}

// Struct validates a typed request using its `validate` tags. Field names in
// the resulting *Error come from the `mapstructure` tags.
func Struct(v any) error {
	err := structValidator.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating %T: %w", v, err)
	}

	fields := make([]FieldError, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		fields = append(fields, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Code:    "validation_" + fe.Tag(),
			Message: describe(fe),
		})
	}

	return newError(fields)
}

// Decode copies a parameter bag into a typed request. Keys without a matching
// field are kept by a `mapstructure:",remain"` map when the request has one.
func Decode(input map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return fmt.Errorf("creating decoder for %T: %w", out, err)
	}

	if err := decoder.Decode(input); err != nil {
		return &Error{
			Message: failedMessage,
			Details: err.Error(),
			Fields:  []FieldError{{Field: "", Code: "validation_decode", Message: err.Error()}},
		}
	}

	return nil
}

// Bind decodes input into a new R and validates it.
func Bind[R any](input map[string]any) (R, error) {
	var req R

	if err := Decode(input, &req); err != nil {
		return req, err
	}

	if err := Struct(req); err != nil {
		return req, err
	}

	return req, nil
}

func fieldPath(namespace string) string {
	if index := strings.Index(namespace, "."); index >= 0 {
		return namespace[index+1:]
	}

	return namespace
}

func describe(fe validator.FieldError) string {
	if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
		switch fe.Tag() {
		case "min":
			return fmt.Sprintf("the length must be no less than %s", fe.Param())
		case "max":
			return fmt.Sprintf("the length must be no more than %s", fe.Param())
		}
	}

	switch fe.Tag() {
	case "required", "required_without", "required_with":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte", "min":
		return fmt.Sprintf("must be no less than %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "lte", "max":
		return fmt.Sprintf("must be no greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "datetime":
		return fmt.Sprintf("must match the %s layout", fe.Param())
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}
