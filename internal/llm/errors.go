package llm

import (
	"errors"
	"fmt"
)

// Domain Errors
var (
	ErrUpstream          = errors.New("upstream provider request failed")
	ErrMalformedResponse = errors.New("malformed upstream response")
	ErrInvalidJSON       = errors.New("invalid JSON from model")
	ErrUnexpectedShape   = errors.New("unexpected response shape: expected a JSON array")
	ErrCountMismatch     = errors.New("question count mismatch")
	ErrInvalidItem       = errors.New("invalid question item")
)

// UpstreamStatusError is returned when the provider answers with a non-2xx status.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamStatusError) Unwrap() error { return ErrUpstream }

// InvalidJSONError keeps the offending model text for logging. Never send Raw to clients.
type InvalidJSONError struct {
	Raw string
	Err error
}

func (e *InvalidJSONError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidJSON, e.Err)
}

func (e *InvalidJSONError) Unwrap() []error { return []error{ErrInvalidJSON, e.Err} }

// CountMismatchError reports how many questions were requested and received.
type CountMismatchError struct {
	Expected int
	Actual   int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %d questions, got %d", ErrCountMismatch, e.Expected, e.Actual)
}

func (e *CountMismatchError) Unwrap() error { return ErrCountMismatch }

// InvalidItemError points at the first question that failed validation (0-based).
type InvalidItemError struct {
	Index  int
	Reason string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("%s at index %d: %s", ErrInvalidItem, e.Index, e.Reason)
}

func (e *InvalidItemError) Unwrap() error { return ErrInvalidItem }

// IsGenerationError reports whether err came from the provider call or from
// parsing its output, as opposed to a local failure.
func IsGenerationError(err error) bool {
	for _, target := range []error{
		ErrUpstream, ErrMalformedResponse, ErrInvalidJSON,
		ErrUnexpectedShape, ErrCountMismatch, ErrInvalidItem,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
