package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldViolation is a single validation failure keyed by field name.
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError carries every violation found in a request so the caller
// can choose which to surface. The HTTP error handler surfaces the first.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

// First returns the first violation message, or a generic fallback.
func (e *ValidationError) First() string {
	if len(e.Violations) == 0 {
		return "Validation failed"
	}
	return e.Violations[0].Message
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface. Validation failures come
// back as a *ValidationError with one entry per violating field.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := &ValidationError{Violations: make([]FieldViolation, 0, len(ve))}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		out.Violations = append(out.Violations, FieldViolation{
			Field:   field,
			Message: fieldError(field, fe),
		})
	}
	return out
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
