// Package validator adapts go-playground/validator to echo's Validator
// interface.
package validator

import (
	domainerrors "insight/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator validates bound request structs via `validate` tags.
type RequestValidator struct {
	validate *validator.Validate
}

// New creates the request validator.
func New() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

// Validate implements echo.Validator. Validation failures surface as the
// domain validation error carrying the field details.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
