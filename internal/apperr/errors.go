// Package apperr defines the error taxonomy shared across service layers.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTitle rejects meeting titles too short, too generic, or
	// symbolic-only to produce a meaningful agenda.
	ErrInvalidTitle = errors.New("invalid meeting title")

	// ErrMalformedResponse means the model output could not be parsed as JSON.
	ErrMalformedResponse = errors.New("model did not return valid JSON")

	// ErrBadStructure means the model returned JSON that does not match the
	// three-key agenda contract.
	ErrBadStructure = errors.New("invalid agenda structure from model")

	ErrNotFound = errors.New("not found")
)

// ProviderError carries diagnostic detail from a failed completion call.
// It is logged server-side only; API callers see a generic failure.
type ProviderError struct {
	Status  int
	Code    string
	Type    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (status=%d type=%s code=%s): %s",
		e.Status, e.Type, e.Code, e.Message)
}
