package errors

import (
	"errors"
	"fmt"
)

// Common error types for the admin console
var (
	// Session errors
	ErrNoSession    = errors.New("no session")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Request errors
	ErrValidation     = errors.New("validation failed")
	ErrTenantRequired = errors.New("tenant id required")
	ErrInvalidPeriod  = errors.New("invalid period")

	// Response errors
	ErrNotFound         = errors.New("not found")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrDecodeResponse   = errors.New("could not decode response")

	// General errors
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Validationf returns an ErrValidation carrying a field level message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join is errors.Join, re-exported so callers need only this package.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// New is errors.New, re-exported so callers need only this package.
func New(text string) error {
	return errors.New(text)
}
