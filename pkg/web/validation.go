package web

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// GetErrorMsg returns a human readable message for a failed binding rule.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "min":
		return fmt.Sprintf(" must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf(" must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf(" must be greater than %s", fe.Param())
	case "uuid":
		return " must be a valid UUID"
	case "currency":
		return " is not configured"
	default:
		return " is invalid"
	}
}
