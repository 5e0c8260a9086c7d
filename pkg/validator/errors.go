package validator

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrUnknownValidator is returned when a call names a validator that is not registered.
	ErrUnknownValidator = errors.New("validator: unknown validator")

	// ErrInvalidImplementation is returned when an entry has no usable implementation.
	ErrInvalidImplementation = errors.New("validator: invalid implementation")

	// ErrException marks errors produced by a panicking or rejected validator.
	ErrException = errors.New("validator: exception")
)

// Exception is a fault raised by a validator implementation, as opposed to a
// validation failure. It wraps the recovered panic value or the rejection
// error of a deferred result.
type Exception struct {
	Validator string
	cause     error
}

func newException(name string, recovered any) *Exception {
	var cause error
	switch v := recovered.(type) {
	case error:
		cause = errors.WithStack(v)
	default:
		cause = errors.Newf("%v", v)
	}
	return &Exception{Validator: name, cause: cause}
}

func (e *Exception) Error() string {
	return fmt.Sprintf("validator %q: %v", e.Validator, e.cause)
}

func (e *Exception) Unwrap() error {
	return e.cause
}

// Is reports ErrException so callers can test with errors.Is.
func (e *Exception) Is(target error) bool {
	return target == ErrException
}

// Cause returns the underlying panic value or rejection as an error.
func (e *Exception) Cause() error {
	return e.cause
}

// ValidationError is the shaped result of a failed validation. Its keys are
// defined by the error format in effect; the default format produces "error"
// (the reporting validator name) and "message" plus the echoed options.
// A nil ValidationError means the value is valid.
type ValidationError map[string]any

func (e ValidationError) Error() string {
	msg := e.Message()
	if msg == "" {
		msg = "validation failed"
	}
	if name := e.Validator(); name != "" {
		return name + ": " + msg
	}
	return msg
}

// Message returns the "message" field when it is a string.
func (e ValidationError) Message() string {
	s, _ := e["message"].(string)
	return s
}

// Validator returns the "error" field, the reporting validator name under the default format.
func (e ValidationError) Validator() string {
	s, _ := e["error"].(string)
	return s
}

// Field returns the value stored under key.
func (e ValidationError) Field(key string) any {
	return e[key]
}

// Has reports whether the field is present.
func (e ValidationError) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// Err returns e as an error, or nil for a nil ValidationError. Use it when
// passing the result through an error return to avoid a non-nil interface
// holding a nil map.
func (e ValidationError) Err() error {
	if e == nil {
		return nil
	}
	return e
}

// ExtractValidationError extracts a ValidationError from an error chain.
func ExtractValidationError(err error) ValidationError {
	if err == nil {
		return nil
	}

	var verr ValidationError
	if errors.As(err, &verr) {
		return verr
	}

	return nil
}

func IsValidationError(err error) bool {
	return ExtractValidationError(err) != nil
}

// IsException reports whether err carries a validator exception.
func IsException(err error) bool {
	return errors.Is(err, ErrException)
}
