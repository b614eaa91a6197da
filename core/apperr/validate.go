package apperr

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate runs struct validation and converts the first failing field into
// a Validation error coded "<prefix>.<Field>.<Rule>".
func Validate(v *validator.Validate, prefix string, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate %s: %w", prefix, err)
	}

	fe := fieldErrs[0]
	return NewValidation(
		fmt.Sprintf("%s.%s.%s", prefix, fe.Field(), ruleName(fe.Tag())),
		describe(fe),
	)
}

func ruleName(tag string) string {
	switch tag {
	case "required":
		return "Empty"
	case "max", "min", "len":
		return "Length"
	case "email":
		return "Format"
	default:
		return "Invalid"
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}
