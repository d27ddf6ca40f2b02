// Package errors defines the console's failure taxonomy: transport failures,
// non-2xx service responses and client-side validation failures.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = stderrors.New("not found")
	ErrDraftNotFound       = stderrors.New("draft not found")
	ErrDeleteNotAllowed    = stderrors.New("order in terminal status cannot be deleted")
	ErrReadOnly            = stderrors.New("only the status of an existing order can be changed")
	ErrStatusNotAssignable = stderrors.New("status cannot be set before the order is created")
)

// Is and As forward to the standard library so callers need a single import.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// New forwards to the standard library.
func New(text string) error { return stderrors.New(text) }

// ValidationError is a client-side check that failed before any request was sent.
type ValidationError struct {
	Field   string
	Message string
	Details map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationErrors reports every failed check of a form at once.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, " · ")
}

// Fields maps each failed field to its message.
func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for _, e := range v {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

// OrNil returns nil when no check failed, so callers can return it directly.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// ServiceError is a non-2xx response from a backend service. Message is the
// response body text, or the HTTP status text when the body was empty.
type ServiceError struct {
	Service    string
	Operation  string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NotFound reports whether the backend answered 404.
func (e *ServiceError) NotFound() bool {
	return e.StatusCode == 404
}

// Is lets errors.Is(err, ErrNotFound) match a 404 response.
func (e *ServiceError) Is(target error) bool {
	return target == ErrNotFound && e.NotFound()
}

// TransportError wraps a failure to reach a backend service at all.
type TransportError struct {
	Service   string
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s service unreachable: %v", e.Service, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
