package val

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/code19m/errx"
	"github.com/go-playground/validator/v10"
)

const (
	CodeValidationFailed = "VALIDATION_FAILED"
)

// ValidateSchema validates schema and returns a T_Validation error with one entry per failed field.
func ValidateSchema(schema any) error {
	err := validate.Struct(schema)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(errx.M)
		for _, fieldErr := range validationErrors {
			fields[fieldPath(fieldErr)] = describe(fieldErr)
		}

		return errx.New(
			"Validation failed. See fields for details.",
			errx.WithCode(CodeValidationFailed),
			errx.WithType(errx.T_Validation),
			errx.WithFields(fields),
		)
	}

	return errx.New(
		"Unknown validation error: "+err.Error(),
		errx.WithCode(CodeValidationFailed),
		errx.WithType(errx.T_Validation),
	)
}

// fieldPath drops the root struct name from the namespace, e.g. "items[0].path".
func fieldPath(fieldErr validator.FieldError) string {
	ns := fieldErr.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fieldErr.Field()
}

func describe(fieldErr validator.FieldError) string {
	param := fieldErr.Param()

	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if fieldErr.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at least %s items", param)
		}
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", param)
		}
		return "Must be at least " + param
	case "max":
		if fieldErr.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at most %s items", param)
		}
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", param)
		}
		return "Must be at most " + param
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "url":
		return "Must be a valid URL"
	case TagVPath:
		return "Must be a relative path without empty, '.' or '..' segments"
	case TagVPrefix:
		return "Must be empty or a relative folder path ending with '/'"
	}

	return "Failed validation: " + fieldErr.Tag()
}
