package catalog

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxSearchResults caps every search result set.
	MaxSearchResults = 50
)

// ErrValidation matches (errors.Is) every ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError carries field level problems, usually validation.Errors.
type ValidationError struct {
	Err error
}

func NewValidationError(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

// Fields returns per-field messages when the underlying error is a validation.Errors.
func (e *ValidationError) Fields() map[string]string {
	var verrs validation.Errors
	if !errors.As(e.Err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for field, err := range verrs {
		if err != nil {
			out[field] = err.Error()
		}
	}
	return out
}

// ValidatePage checks list pagination parameters.
func ValidatePage(page, pageSize int) error {
	err := validation.Errors{
		"page":     validation.Validate(page, validation.Min(1)),
		"pageSize": validation.Validate(pageSize, validation.Min(1), validation.Max(MaxPageSize)),
	}.Filter()
	return NewValidationError(err)
}
