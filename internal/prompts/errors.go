package prompts

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies prompt operation failures so callers can branch on the
// category instead of parsing messages.
type Kind string

// Failure kinds.
const (
	KindValidation    Kind = "validation"
	KindRateLimit     Kind = "rate_limit"
	KindUpstream      Kind = "upstream"
	KindLimitExceeded Kind = "limit_exceeded"
	KindInternal      Kind = "internal"
)

// ErrEmptyCompletion indicates the completion service answered without usable text.
var ErrEmptyCompletion = errors.New("completion returned no usable text")

// Error is a classified prompt failure. Message is safe to show to clients;
// Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Details map[string][]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindInternal
}

// MapHTTPStatus maps prompt errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindLimitExceeded:
		return http.StatusBadRequest
	case KindRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func validationError(message string, details map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func upstreamError(op Operation, err error) *Error {
	return &Error{
		Kind:    KindUpstream,
		Message: fmt.Sprintf("failed to %s prompt", op),
		Err:     err,
	}
}

func limitExceededError() *Error {
	return &Error{
		Kind:    KindLimitExceeded,
		Message: fmt.Sprintf("Maximum refinements (%d) reached", MaxRefinements),
	}
}
