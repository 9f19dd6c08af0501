package finhelp

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput is returned for inputs that cannot be computed
	ErrInvalidInput = errors.New("invalid input")
)

// Error codes
const (
	ErrCodeInternal = "INTERNAL"
)

// Error represents an engine failure that is not the caller's fault
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// ValidationError represents a rejected input field
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidInput
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ValidationErrors represents multiple validation errors
type ValidationErrors struct {
	Errors []*ValidationError `json:"errors"`
}

// Error implements the error interface
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d validation errors occurred: %s", len(e.Errors), e.Errors[0].Error())
}

// Unwrap exposes the individual field errors
func (e *ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, ve := range e.Errors {
		errs = append(errs, ve)
	}
	return errs
}

// IsValidation checks if error was caused by invalid input
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// validator collects field errors before any computation starts
type validator struct {
	errs []*ValidationError
}

func (v *validator) check(ok bool, field, message string, value interface{}) {
	if !ok {
		v.errs = append(v.errs, &ValidationError{Field: field, Message: message, Value: value})
	}
}

func (v *validator) finite(field string, value float64) bool {
	ok := !math.IsNaN(value) && !math.IsInf(value, 0)
	// NaN and Inf cannot be JSON encoded, so the value is left out
	v.check(ok, field, "must be a finite number", nil)
	return ok
}

func (v *validator) err() error {
	switch len(v.errs) {
	case 0:
		return nil
	case 1:
		return v.errs[0]
	default:
		return &ValidationErrors{Errors: v.errs}
	}
}
