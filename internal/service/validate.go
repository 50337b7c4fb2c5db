// Package service implements the business logic between the HTTP API and
// the storage service.
package service

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/reelrateapp/reelrate-server/internal/store"
)

// validate is a shared validator instance for request validation.
var validate = func() *validator.Validate {
	v := validator.New()
	// Use JSON tag names for field names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove any options (like omitempty, -)
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})
	return v
}()

// formatValidationError converts validator errors into store errors with
// a caller-facing message.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			field := e.Field()
			switch e.Tag() {
			case "required":
				return store.ErrInvalidInput.WithMessage(field + " is required")
			case "email":
				return store.ErrInvalidInput.WithMessage(field + " must be a valid email address")
			case "min":
				return store.ErrInvalidInput.WithMessage(field + " is below the minimum of " + e.Param())
			case "max":
				return store.ErrInvalidInput.WithMessage(field + " exceeds the maximum of " + e.Param())
			default:
				return store.ErrInvalidInput.WithMessage(field + " is invalid")
			}
		}
	}
	return err
}
