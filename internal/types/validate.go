// Package types provides request types and struct validation shared by the
// HTTP API and the CLI.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator caches struct metadata per type.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name so errors line up with request bodies
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldError describes one invalid field
type FieldError struct {
	Field   string
	Message string
}

// ValidateStruct validates s against its `validate` struct tags
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// FieldErrors flattens a validation error into field/message pairs.
// Non-validation errors yield a single entry with an empty field.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

// describe renders a validator.FieldError as a short human message
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	case "latitude", "longitude":
		return fmt.Sprintf("must be a valid %s", fe.Tag())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
