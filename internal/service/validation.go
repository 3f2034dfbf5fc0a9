package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names, which is what clients send.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		d, ok := f.Interface().(domain.Date)
		if !ok || d.IsZero() {
			return nil
		}
		return d.Time
	}, domain.Date{})

	return v
}

// validateStruct runs the struct tags of cmd and converts failures into a
// *ValidationError with one message per field.
func validateStruct(cmd any) error {
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating input: %w", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldMessage(fe))
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	// Namespace is "CreatePatientCommand.next_of_kin.name"; drop the type.
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return field + " must be a time in HH:MM format"
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

// mergeValidation joins a struct-tag failure with checks the tags cannot
// express. Any non-validation error from the first step is returned as is.
func mergeValidation(tagErr error, extra ...string) error {
	var fields []string
	if tagErr != nil {
		var ve *ValidationError
		if !errors.As(tagErr, &ve) {
			return tagErr
		}
		fields = append(fields, ve.Fields...)
	}
	fields = append(fields, extra...)
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
