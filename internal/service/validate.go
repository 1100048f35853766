package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a validation failure tagged with the offending field and a
// human-readable reason. Only the first violating field is reported; fields
// are checked in declaration order (name, description, price, category, stock).
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// newValidator builds a validator that reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validatePayload checks the payload against the field rules and returns the
// first violation as a *FieldError.
func (s *Service) validatePayload(payload ProductPayload) error {
	err := s.validate.Struct(payload)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		return &FieldError{Field: first.Field(), Reason: reasonFor(first)}
	}
	return fmt.Errorf("failed to validate payload: %w", err)
}

// reasonFor maps a validator rule tag to a human-readable reason.
func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return "failed on rule: " + fe.Tag()
	}
}
