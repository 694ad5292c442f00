package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator adapts go-playground/validator to echo.Validator
type Validator struct {
	validate *validator.Validate
}

// New creates a validator that reports fields by their JSON names
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate validates a struct according to its `validate` tags
func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

// MissingFields returns the names of the fields that failed the "required"
// rule, or nil when err is not a validation error.
func MissingFields(err error) []string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}

	var fields []string
	for _, fe := range errs {
		if fe.Tag() == "required" {
			fields = append(fields, fe.Field())
		}
	}
	return fields
}
